package config

import (
	"flag"
)

// Flags binds the command-line overrides shared by all wavetrack binaries
type Flags struct {
	fs *flag.FlagSet

	Path          string
	width, height int
	seed          int64
	mode          string
	stopOnSuccess bool
	maxResets     int
}

// BindFlags registers the override flags on fs
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	d := Default()
	fs.StringVar(&f.Path, "config", DefaultPath, "TOML config file (missing default file is ignored)")
	fs.IntVar(&f.width, "width", d.Grid.Width, "grid width")
	fs.IntVar(&f.height, "height", d.Grid.Height, "grid height")
	fs.Int64Var(&f.seed, "seed", d.Grid.Seed, "random seed (0 = time based)")
	fs.StringVar(&f.mode, "mode", d.Run.Mode, "step: one cell per frame, run: whole grid per frame")
	fs.BoolVar(&f.stopOnSuccess, "hold", d.Run.StopOnSuccess, "keep the first finished grid instead of regenerating")
	fs.IntVar(&f.maxResets, "max-resets", d.Run.MaxResets, "give up after this many consecutive contradictions (0 = never)")
	return f
}

// Load reads the config file, then applies only the flags set on the command line
func (f *Flags) Load() (Config, error) {
	var (
		cfg Config
		err error
	)
	explicit := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "config" {
			explicit = true
		}
	})
	if explicit {
		cfg, err = Load(f.Path)
	} else {
		cfg, err = LoadOptional(f.Path)
	}
	if err != nil {
		return cfg, err
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.Grid.Width = f.width
		case "height":
			cfg.Grid.Height = f.height
		case "seed":
			cfg.Grid.Seed = f.seed
		case "mode":
			cfg.Run.Mode = f.mode
		case "hold":
			cfg.Run.StopOnSuccess = f.stopOnSuccess
		case "max-resets":
			cfg.Run.MaxResets = f.maxResets
		}
	})
	return cfg, cfg.Validate()
}
