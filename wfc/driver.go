package wfc

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"
)

// Mode selects how much work one Step performs
type Mode uint8

const (
	// ModeStep collapses one cell per Step, for per-frame visualization
	ModeStep Mode = iota
	// ModeRun collapses until the grid is full, retrying in-call after contradictions
	ModeRun
)

func (m Mode) String() string {
	switch m {
	case ModeStep:
		return "step"
	case ModeRun:
		return "run"
	default:
		return "unknown"
	}
}

// ParseMode resolves "step" or "run"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "step":
		return ModeStep, nil
	case "run":
		return ModeRun, nil
	default:
		return ModeStep, fmt.Errorf("unknown mode %q", s)
	}
}

// State is the driver position in the select/collapse/propagate cycle
type State uint8

const (
	StateReady State = iota
	StateSelecting
	StateCollapsed
	StatePropagated
	StateContradiction
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateSelecting:
		return "Selecting"
	case StateCollapsed:
		return "Collapsed"
	case StatePropagated:
		return "Propagated"
	case StateContradiction:
		return "Contradiction"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Outcome reports what a Step did
type Outcome uint8

const (
	// OutcomeCollapsed: a cell was collapsed and propagation succeeded
	OutcomeCollapsed Outcome = iota
	// OutcomeContradiction: a domain emptied, grid and output were reset
	OutcomeContradiction
	// OutcomeCompleted: every cell was already collapsed when the step began
	OutcomeCompleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCollapsed:
		return "collapsed"
	case OutcomeContradiction:
		return "contradiction"
	case OutcomeCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Config parameterizes a Driver
type Config struct {
	Width, Height int

	// Seed feeds the default random source (0 = time based). Ignored when Rand is set.
	Seed int64
	Rand Rand

	// Model defaults to TrackModel
	Model *Model

	Mode Mode

	// StopOnSuccess holds a finished grid instead of regenerating
	StopOnSuccess bool

	// MaxResets bounds consecutive contradiction resets (0 = unbounded)
	// Counter clears on every completed run and on Reset
	MaxResets int
}

// Stats counts driver activity since construction
type Stats struct {
	Steps             int
	Collapses         int
	Contradictions    int
	CompletedRuns     int
	ConsecutiveResets int
}

// Driver orchestrates select, collapse and propagate over a Grid
// Not safe for concurrent use
type Driver struct {
	cfg   Config
	grid  *Grid
	model *Model
	rng   Rand
	state State
	stats Stats
	last  Point
}

// New builds a driver over a width x height grid with the track model
func New(width, height int) (*Driver, error) {
	return NewDriver(Config{Width: width, Height: height})
}

// NewDriver builds a driver from cfg
func NewDriver(cfg Config) (*Driver, error) {
	grid, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if cfg.MaxResets < 0 {
		return nil, fmt.Errorf("wfc: negative max resets %d", cfg.MaxResets)
	}

	if cfg.Model == nil {
		cfg.Model = TrackModel()
	}

	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	return &Driver{
		cfg:   cfg,
		grid:  grid,
		model: cfg.Model,
		rng:   rng,
		state: StateReady,
		last:  Point{-1, -1},
	}, nil
}

func (d *Driver) Width() int { return d.grid.width }
func (d *Driver) Height() int { return d.grid.height }
func (d *Driver) Grid() *Grid { return d.grid }
func (d *Driver) Model() *Model { return d.model }
func (d *Driver) State() State { return d.state }
func (d *Driver) Stats() Stats { return d.stats }
func (d *Driver) Mode() Mode { return d.cfg.Mode }
func (d *Driver) LastCell() Point { return d.last }

// Complete reports whether the grid is fully collapsed; the next Step fires run completion
func (d *Driver) Complete() bool {
	return d.grid.AllCollapsed()
}

// Reset discards the current run and clears out (which may be nil)
func (d *Driver) Reset(out [][]Tile) {
	d.grid.Reset()
	if out != nil {
		ClearOutput(out)
	}
	d.state = StateReady
	d.stats.ConsecutiveResets = 0
	d.last = Point{-1, -1}
}

// Step advances generation, writing collapsed tiles into out ([height][width])
// In ModeStep exactly one select/collapse/propagate cycle runs
func (d *Driver) Step(out [][]Tile) (Outcome, error) {
	if err := d.checkOutput(out); err != nil {
		return OutcomeCollapsed, err
	}

	switch d.state {
	case StateFailed:
		return OutcomeContradiction, ErrRetryLimit
	case StateDone:
		if d.cfg.StopOnSuccess {
			return OutcomeCompleted, nil
		}
	}

	if d.cfg.Mode == ModeRun {
		return d.run(out)
	}
	return d.step(out)
}

func (d *Driver) run(out [][]Tile) (Outcome, error) {
	for {
		outcome, err := d.step(out)
		if err != nil {
			return outcome, err
		}
		switch outcome {
		case OutcomeCompleted:
			return outcome, nil
		case OutcomeCollapsed:
			if d.grid.AllCollapsed() {
				return outcome, nil
			}
		}
	}
}

func (d *Driver) step(out [][]Tile) (Outcome, error) {
	d.stats.Steps++
	d.state = StateSelecting

	p, ok := SelectNext(d.grid, d.rng)
	if !ok {
		return d.complete(out), nil
	}

	t, err := Collapse(d.grid, p, d.rng)
	if err != nil {
		if errors.Is(err, ErrContradiction) {
			return d.contradiction(out, p)
		}
		return OutcomeCollapsed, err
	}
	out[p.Y][p.X] = t
	d.last = p
	d.stats.Collapses++
	d.state = StateCollapsed

	if Propagate(d.grid, d.model, p) {
		return d.contradiction(out, p)
	}
	d.state = StatePropagated
	return OutcomeCollapsed, nil
}

func (d *Driver) complete(out [][]Tile) Outcome {
	d.stats.CompletedRuns++
	d.stats.ConsecutiveResets = 0
	d.state = StateDone

	if d.cfg.StopOnSuccess {
		log.Printf("wfc: run %d complete, holding %dx%d grid", d.stats.CompletedRuns, d.grid.width, d.grid.height)
		return OutcomeCompleted
	}

	log.Printf("wfc: run %d complete, resetting for new run", d.stats.CompletedRuns)
	d.grid.Reset()
	ClearOutput(out)
	d.last = Point{-1, -1}
	return OutcomeCompleted
}

func (d *Driver) contradiction(out [][]Tile, at Point) (Outcome, error) {
	d.stats.Contradictions++
	d.stats.ConsecutiveResets++
	log.Printf("wfc: contradiction propagating from (%d,%d), reset %d", at.X, at.Y, d.stats.ConsecutiveResets)

	d.grid.Reset()
	ClearOutput(out)
	d.last = Point{-1, -1}

	if d.cfg.MaxResets > 0 && d.stats.ConsecutiveResets >= d.cfg.MaxResets {
		d.state = StateFailed
		log.Printf("wfc: giving up after %d consecutive resets", d.stats.ConsecutiveResets)
		return OutcomeContradiction, fmt.Errorf("%w: %d", ErrRetryLimit, d.stats.ConsecutiveResets)
	}
	d.state = StateContradiction
	return OutcomeContradiction, nil
}

func (d *Driver) checkOutput(out [][]Tile) error {
	if len(out) != d.grid.height {
		return fmt.Errorf("%w: %d rows, want %d", ErrOutputShape, len(out), d.grid.height)
	}
	for y, row := range out {
		if len(row) != d.grid.width {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrOutputShape, y, len(row), d.grid.width)
		}
	}
	return nil
}

// PrintEntropies dumps the entropy matrix to stdout
func (d *Driver) PrintEntropies() {
	d.grid.WriteEntropies(os.Stdout)
}
