package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/wavetrack/config"
	"github.com/lixenwraith/wavetrack/level"
	"github.com/lixenwraith/wavetrack/wfc"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	check := flag.String("check", "", "validate a level file against the adjacency rules and exit")
	list := flag.Bool("list", false, "list level files in "+level.DefaultDir+" and exit")
	batch := flag.Bool("batch", false, "generate one grid from config/flags without prompting")
	save := flag.String("save", "", "with -batch, write the grid to this level file")
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	model, err := cfg.Model()
	if err != nil {
		log.Fatalf("Invalid rules: %v", err)
	}

	switch {
	case *check != "":
		ok, err := checkLevel(os.Stdout, *check, model)
		if err != nil {
			log.Fatalf("Check failed: %v", err)
		}
		if !ok {
			os.Exit(1)
		}
	case *list:
		paths, err := level.Discover(level.DefaultDir)
		if err != nil {
			log.Fatalf("Failed to list levels: %v", err)
		}
		for _, p := range paths {
			fmt.Println(p)
		}
	case *batch:
		dcfg, err := cfg.DriverConfig()
		if err != nil {
			log.Fatalf("Invalid config: %v", err)
		}
		d, out, err := generate(dcfg)
		if err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
		report(os.Stdout, d, out, 0)
		if *save != "" {
			if err := level.Save(*save, out); err != nil {
				log.Fatalf("Failed to save level: %v", err)
			}
		}
	default:
		interactive(os.Stdin, os.Stdout, cfg, model)
	}
}

func interactive(in io.Reader, w io.Writer, cfg config.Config, model *wfc.Model) {
	reader := bufio.NewReader(in)

	for {
		fmt.Fprintln(w, "\n=== WAVE FUNCTION COLLAPSE TRACK GENERATOR ===")

		width := getInt(reader, w, fmt.Sprintf("Width (default %d): ", cfg.Grid.Width), cfg.Grid.Width)
		height := getInt(reader, w, fmt.Sprintf("Height (default %d): ", cfg.Grid.Height), cfg.Grid.Height)
		seed := int64(getInt(reader, w, "Seed [0 = random] (default 0): ", 0))

		dcfg := wfc.Config{
			Width:     width,
			Height:    height,
			Seed:      seed,
			Model:     model,
			MaxResets: cfg.Run.MaxResets,
		}

		fmt.Fprintln(w, "\nGenerating...")
		startT := time.Now()
		d, out, err := generate(dcfg)
		dur := time.Since(startT)
		if err != nil {
			fmt.Fprintf(w, "Failed: %v\n", err)
		} else {
			report(w, d, out, dur)

			fmt.Fprint(w, "\nSave as level? [name or empty to skip]: ")
			name, _ := reader.ReadString('\n')
			name = strings.TrimSpace(name)
			if name != "" {
				path := filepath.Join(level.DefaultDir, name+level.Extension)
				if err := level.Save(path, out); err != nil {
					log.Fatalf("Failed to save level: %v", err)
				}
				fmt.Fprintf(w, "Saved %s\n", path)
			}
		}

		fmt.Fprint(w, "\nGenerate another? [Y/n]: ")
		cont, err := reader.ReadString('\n')
		if err != nil || strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

// generate collapses one full grid, retrying contradictions in-call
func generate(dcfg wfc.Config) (*wfc.Driver, [][]wfc.Tile, error) {
	dcfg.Mode = wfc.ModeRun
	dcfg.StopOnSuccess = true

	d, err := wfc.NewDriver(dcfg)
	if err != nil {
		return nil, nil, err
	}
	out := wfc.NewOutput(d.Width(), d.Height())
	if _, err := d.Step(out); err != nil {
		return d, out, err
	}
	return d, out, nil
}

func report(w io.Writer, d *wfc.Driver, out [][]wfc.Tile, dur time.Duration) {
	st := d.Stats()
	if dur > 0 {
		fmt.Fprintf(w, "Done in %v\n", dur)
	}
	fmt.Fprintf(w, "Grid Dimensions: %dx%d\n", d.Width(), d.Height())
	fmt.Fprintf(w, "Collapses: %d, Contradictions: %d\n", st.Collapses, st.Contradictions)

	draw(w, out)

	fmt.Fprintln(w, "\nEntropies:")
	d.Grid().WriteEntropies(w)
}

func draw(w io.Writer, out [][]wfc.Tile) {
	for _, line := range level.Format(out) {
		fmt.Fprintln(w, line)
	}
}

// checkLevel prints every rule violation in the level at path
func checkLevel(w io.Writer, path string, model *wfc.Model) (bool, error) {
	out, err := level.Load(path)
	if err != nil {
		return false, err
	}
	vs := wfc.Violations(out, model)
	for _, v := range vs {
		fmt.Fprintf(w, "(%d,%d) %s -> (%d,%d) %s not allowed %s\n",
			v.A.X, v.A.Y, v.TileA, v.B.X, v.B.Y, v.TileB, v.Direction)
	}
	if len(vs) == 0 {
		fmt.Fprintf(w, "%s: ok\n", path)
	}
	return len(vs) == 0, nil
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, w io.Writer, prompt string, def int) int {
	fmt.Fprint(w, prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 && def > 0 {
		return def
	}
	return v
}
