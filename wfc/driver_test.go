package wfc

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func emptyModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(nil)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func fillOutput(out [][]Tile, tile Tile) {
	for y := range out {
		for x := range out[y] {
			out[y][x] = tile
		}
	}
}

func assertBlank(t *testing.T, out [][]Tile) {
	t.Helper()
	for y := range out {
		for x := range out[y] {
			if out[y][x] != Blank {
				t.Fatalf("output (%d,%d) = %s, want blank", x, y, out[y][x])
			}
		}
	}
}

func copyOutput(out [][]Tile) [][]Tile {
	cp := make([][]Tile, len(out))
	for y := range out {
		cp[y] = append([]Tile(nil), out[y]...)
	}
	return cp
}

func TestNewDriverDefaults(t *testing.T) {
	d, err := New(5, 4)
	if err != nil {
		t.Fatal(err)
	}
	if d.Width() != 5 || d.Height() != 4 {
		t.Errorf("size = %dx%d", d.Width(), d.Height())
	}
	if d.State() != StateReady {
		t.Errorf("initial state = %s", d.State())
	}
	if *d.Model() != *TrackModel() {
		t.Error("default model is not the track model")
	}
	if !d.Grid().IsFresh() {
		t.Error("grid not reset at construction")
	}

	if _, err := New(0, 4); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := NewDriver(Config{Width: 1, Height: 1, MaxResets: -1}); err == nil {
		t.Error("expected error for negative max resets")
	}
}

func TestStepRejectsMismatchedOutput(t *testing.T) {
	d, _ := NewDriver(Config{Width: 3, Height: 2, Seed: 1})
	for _, out := range [][][]Tile{NewOutput(2, 3), NewOutput(3, 3), {make([]Tile, 3), make([]Tile, 2)}} {
		if _, err := d.Step(out); !errors.Is(err, ErrOutputShape) {
			t.Errorf("expected ErrOutputShape, got %v", err)
		}
	}
	if d.Stats().Steps != 0 {
		t.Error("rejected step was counted")
	}
}

func TestStepCollapsesOneCellPerCall(t *testing.T) {
	d, _ := NewDriver(Config{Width: 4, Height: 4, Seed: 3})
	out := NewOutput(4, 4)

	outcome, err := d.Step(out)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != OutcomeCollapsed {
		t.Fatalf("first step outcome = %s", outcome)
	}
	if d.State() != StatePropagated {
		t.Errorf("state = %s, want Propagated", d.State())
	}
	if n := d.Grid().CollapsedCount(); n != 1 {
		t.Errorf("collapsed %d cells, want 1", n)
	}

	p := d.LastCell()
	c, _ := d.Grid().Cell(p.X, p.Y)
	if c.Domain != NewTileSet(out[p.Y][p.X]) {
		t.Errorf("output %s does not match collapsed domain %s", out[p.Y][p.X], c.Domain)
	}
}

func TestContradictionResetsGridAndOutput(t *testing.T) {
	d, _ := NewDriver(Config{Width: 2, Height: 1, Model: emptyModel(t), Rand: &fixedRand{}})
	out := NewOutput(2, 1)
	fillOutput(out, Up)

	outcome, err := d.Step(out)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != OutcomeContradiction {
		t.Fatalf("outcome = %s, want contradiction", outcome)
	}
	if d.State() != StateContradiction {
		t.Errorf("state = %s", d.State())
	}
	if !d.Grid().IsFresh() {
		t.Error("grid not reset after contradiction")
	}
	assertBlank(t, out)

	s := d.Stats()
	if s.Contradictions != 1 || s.ConsecutiveResets != 1 || s.Collapses != 1 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestRetryLimit(t *testing.T) {
	d, _ := NewDriver(Config{Width: 2, Height: 1, Model: emptyModel(t), Rand: &fixedRand{}, MaxResets: 3})
	out := NewOutput(2, 1)

	for i := 1; i <= 2; i++ {
		if _, err := d.Step(out); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	outcome, err := d.Step(out)
	if !errors.Is(err, ErrRetryLimit) || outcome != OutcomeContradiction {
		t.Fatalf("third reset: outcome %s err %v, want ErrRetryLimit", outcome, err)
	}
	if d.State() != StateFailed {
		t.Errorf("state = %s, want Failed", d.State())
	}
	if _, err := d.Step(out); !errors.Is(err, ErrRetryLimit) {
		t.Errorf("failed driver kept stepping: %v", err)
	}

	d.Reset(out)
	if d.State() != StateReady || d.Stats().ConsecutiveResets != 0 {
		t.Errorf("Reset did not clear failure: %s %+v", d.State(), d.Stats())
	}
	if _, err := d.Step(out); err != nil {
		t.Errorf("step after Reset: %v", err)
	}
}

func TestCompletionResetsInContinuousMode(t *testing.T) {
	d, _ := NewDriver(Config{Width: 1, Height: 1, Model: emptyModel(t), Rand: &fixedRand{vals: []int{0, 1}}})
	out := NewOutput(1, 1)

	if outcome, _ := d.Step(out); outcome != OutcomeCollapsed {
		t.Fatalf("first outcome = %s", outcome)
	}
	if out[0][0] != Up {
		t.Fatalf("placed %s, want up", out[0][0])
	}
	if !d.Complete() {
		t.Fatal("single cell grid should be complete")
	}

	outcome, err := d.Step(out)
	if err != nil || outcome != OutcomeCompleted {
		t.Fatalf("second step: %s %v", outcome, err)
	}
	if d.State() != StateDone {
		t.Errorf("state = %s, want Done", d.State())
	}
	if !d.Grid().IsFresh() {
		t.Error("grid not reset on completion")
	}
	assertBlank(t, out)
	if d.Stats().CompletedRuns != 1 {
		t.Errorf("completed runs = %d", d.Stats().CompletedRuns)
	}

	// Regeneration continues on the next call
	if outcome, _ := d.Step(out); outcome != OutcomeCollapsed {
		t.Errorf("step after completion = %s, want collapsed", outcome)
	}
}

func TestStopOnSuccessHoldsGrid(t *testing.T) {
	d, _ := NewDriver(Config{Width: 1, Height: 1, Model: emptyModel(t), Rand: &fixedRand{vals: []int{0, 4}}, StopOnSuccess: true})
	out := NewOutput(1, 1)

	d.Step(out)
	for i := 0; i < 3; i++ {
		outcome, err := d.Step(out)
		if err != nil || outcome != OutcomeCompleted {
			t.Fatalf("held step %d: %s %v", i, outcome, err)
		}
	}
	if out[0][0] != Down {
		t.Errorf("held output = %s, want down", out[0][0])
	}
	if !d.Grid().AllCollapsed() {
		t.Error("held grid was reset")
	}
	if d.Stats().CompletedRuns != 1 {
		t.Errorf("completion counted %d times", d.Stats().CompletedRuns)
	}
}

func TestRunModeFillsGridInOneCall(t *testing.T) {
	d, _ := NewDriver(Config{Width: 6, Height: 4, Seed: 11, Mode: ModeRun, StopOnSuccess: true})
	out := NewOutput(6, 4)

	outcome, err := d.Step(out)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != OutcomeCollapsed || !d.Complete() {
		t.Fatalf("run mode left grid incomplete: %s, %d collapsed", outcome, d.Grid().CollapsedCount())
	}
	if vs := Violations(out, d.Model()); len(vs) != 0 {
		t.Fatalf("violations in run-mode grid: %+v", vs)
	}
	if outcome, _ := d.Step(out); outcome != OutcomeCompleted {
		t.Errorf("second call = %s, want completed", outcome)
	}
}

func TestCompletedRunsHaveNoViolations(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		d, err := NewDriver(Config{Width: 8, Height: 8, Seed: seed, Mode: ModeRun, StopOnSuccess: true, MaxResets: 10000})
		if err != nil {
			t.Fatal(err)
		}
		out := NewOutput(8, 8)
		if _, err := d.Step(out); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if vs := Violations(out, d.Model()); len(vs) != 0 {
			t.Fatalf("seed %d: %d violations, first %+v", seed, len(vs), vs[0])
		}
	}
}

// Step a 5x5 grid until a completion reset fires, checking the grid it discarded
func TestEndToEndFiveByFive(t *testing.T) {
	d, err := NewDriver(Config{Width: 5, Height: 5, Seed: 2024})
	if err != nil {
		t.Fatal(err)
	}
	out := NewOutput(5, 5)

	for i := 0; i < 100000; i++ {
		before := copyOutput(out)
		allCollapsed := d.Grid().AllCollapsed()

		outcome, err := d.Step(out)
		if err != nil {
			t.Fatal(err)
		}
		switch outcome {
		case OutcomeContradiction:
			if !d.Grid().IsFresh() {
				t.Fatal("grid not fresh after contradiction")
			}
			assertBlank(t, out)
		case OutcomeCompleted:
			if !allCollapsed {
				t.Fatal("completion fired before every cell collapsed")
			}
			if vs := Violations(before, d.Model()); len(vs) != 0 {
				t.Fatalf("%d adjacency violations, first %+v", len(vs), vs[0])
			}
			assertBlank(t, out)
			t.Logf("✓ completed after %d steps, %d contradictions", i+1, d.Stats().Contradictions)
			return
		}
	}
	t.Fatal("no completion within step budget")
}

func TestViolationsDetectsBothDirections(t *testing.T) {
	m := TrackModel()
	out := [][]Tile{{Blank, Left}}
	vs := Violations(out, m)
	if len(vs) != 1 {
		t.Fatalf("expected 1 violation, got %+v", vs)
	}
	if vs[0].Direction != East || vs[0].TileA != Blank || vs[0].TileB != Left {
		t.Errorf("unexpected violation %+v", vs[0])
	}

	ok := [][]Tile{{Blank, Right}, {Down, Up}}
	if vs := Violations(ok, m); len(vs) != 0 {
		t.Errorf("unexpected violations %+v", vs)
	}
}

func TestPrintEntropies(t *testing.T) {
	d, _ := New(3, 2)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w
	d.PrintEntropies()
	os.Stdout = stdout
	w.Close()

	var buf bytes.Buffer
	io.Copy(&buf, r)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %q", buf.String())
	}
	for _, line := range lines {
		if line != "5 5 5" {
			t.Errorf("row = %q, want %q", line, "5 5 5")
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("RUN"); err != nil || m != ModeRun {
		t.Errorf("ParseMode(RUN) = %v, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeStep {
		t.Errorf("ParseMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMode("batch"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
