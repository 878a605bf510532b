// Package config loads wavetrack settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/wavetrack/wfc"
)

const DefaultPath = "wavetrack.toml"

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Grid  GridConfig   `toml:"grid"`
	Run   RunConfig    `toml:"run"`
	Audio AudioConfig  `toml:"audio"`
	Web   WebConfig    `toml:"web"`
	Rules []RuleConfig `toml:"rules"`
}

type GridConfig struct {
	Width  int   `toml:"width"`
	Height int   `toml:"height"`
	Seed   int64 `toml:"seed"` // 0 = time based
}

type RunConfig struct {
	Mode          string `toml:"mode"` // "step" or "run"
	StopOnSuccess bool   `toml:"stop_on_success"`
	MaxResets     int    `toml:"max_resets"` // 0 = unbounded
	FrameMs       int    `toml:"frame_ms"`   // viewer delay between steps
	HoldMs        int    `toml:"hold_ms"`    // viewer pause on a finished grid
}

type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

type WebConfig struct {
	Addr     string `toml:"addr"`
	UpdateMs int    `toml:"update_ms"`
}

// RuleConfig is one adjacency table entry; any rule replaces the built-in track table
type RuleConfig struct {
	Tile      string   `toml:"tile"`
	Direction string   `toml:"direction"`
	Allowed   []string `toml:"allowed"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Grid: GridConfig{Width: 24, Height: 12},
		Run: RunConfig{
			Mode:    "step",
			FrameMs: 40,
			HoldMs:  1500,
		},
		Audio: AudioConfig{Enabled: true},
		Web:   WebConfig{Addr: ":3000", UpdateMs: 50},
	}
}

// Load reads path over the defaults; unknown keys are rejected
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional reads path when it exists; a missing file yields the defaults
func LoadOptional(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks ranges and that custom rules form a usable model
func (c Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalid, c.Grid.Width, c.Grid.Height)
	}
	if _, err := wfc.ParseMode(c.Run.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Run.MaxResets < 0 {
		return fmt.Errorf("%w: max_resets %d", ErrInvalid, c.Run.MaxResets)
	}
	if c.Run.FrameMs < 0 || c.Run.HoldMs < 0 || c.Web.UpdateMs < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalid)
	}
	if _, err := c.Model(); err != nil {
		return err
	}
	return nil
}

// Model builds the adjacency model: the track table, or the configured rules
func (c Config) Model() (*wfc.Model, error) {
	if len(c.Rules) == 0 {
		return wfc.TrackModel(), nil
	}

	rules := make([]wfc.Rule, 0, len(c.Rules))
	for i, rc := range c.Rules {
		t, ok := wfc.ParseTile(rc.Tile)
		if !ok {
			return nil, fmt.Errorf("%w: rules[%d] tile %q", ErrInvalid, i, rc.Tile)
		}
		d, ok := wfc.ParseDirection(rc.Direction)
		if !ok {
			return nil, fmt.Errorf("%w: rules[%d] direction %q", ErrInvalid, i, rc.Direction)
		}
		var allowed wfc.TileSet
		for _, name := range rc.Allowed {
			a, ok := wfc.ParseTile(name)
			if !ok {
				return nil, fmt.Errorf("%w: rules[%d] allowed tile %q", ErrInvalid, i, name)
			}
			allowed = allowed.With(a)
		}
		rules = append(rules, wfc.Rule{Tile: t, Direction: d, Allowed: allowed})
	}

	m, err := wfc.NewModel(rules)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// DriverConfig translates the settings for wfc.NewDriver
func (c Config) DriverConfig() (wfc.Config, error) {
	mode, err := wfc.ParseMode(c.Run.Mode)
	if err != nil {
		return wfc.Config{}, err
	}
	model, err := c.Model()
	if err != nil {
		return wfc.Config{}, err
	}
	return wfc.Config{
		Width:         c.Grid.Width,
		Height:        c.Grid.Height,
		Seed:          c.Grid.Seed,
		Model:         model,
		Mode:          mode,
		StopOnSuccess: c.Run.StopOnSuccess,
		MaxResets:     c.Run.MaxResets,
	}, nil
}

func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.Run.FrameMs) * time.Millisecond
}

func (c Config) HoldDuration() time.Duration {
	return time.Duration(c.Run.HoldMs) * time.Millisecond
}

func (c Config) UpdateInterval() time.Duration {
	return time.Duration(c.Web.UpdateMs) * time.Millisecond
}
