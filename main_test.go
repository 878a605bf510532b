package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wavetrack/audio"
	"github.com/lixenwraith/wavetrack/config"
	"github.com/lixenwraith/wavetrack/wfc"
)

func newTestViewer(t *testing.T, dcfg wfc.Config) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)

	d, err := wfc.NewDriver(dcfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Run.FrameMs = 0
	cfg.Run.HoldMs = 0
	return NewViewer(s, d, audio.NewCues(), cfg), s
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestViewerStepsOncePerFrame(t *testing.T) {
	v, _ := newTestViewer(t, wfc.Config{Width: 4, Height: 4, Seed: 9})

	now := time.Now()
	for i := 1; i <= 3; i++ {
		v.update(now.Add(time.Duration(i) * time.Millisecond))
		if got := v.driver.Stats().Steps; got != i {
			t.Fatalf("after %d frames driver ran %d steps", i, got)
		}
	}
}

func TestViewerPauseAndManualStep(t *testing.T) {
	v, _ := newTestViewer(t, wfc.Config{Width: 4, Height: 4, Seed: 9})

	v.handleInput(key(' '))
	v.update(time.Now().Add(time.Second))
	if v.driver.Stats().Steps != 0 {
		t.Fatal("paused viewer stepped")
	}

	v.handleInput(key('s'))
	if v.driver.Stats().Steps != 1 {
		t.Errorf("manual step ran %d steps", v.driver.Stats().Steps)
	}

	v.handleInput(key('r'))
	if !v.driver.Grid().IsFresh() {
		t.Error("reset left collapsed cells")
	}
}

func TestViewerQuitKeys(t *testing.T) {
	v, _ := newTestViewer(t, wfc.Config{Width: 2, Height: 2, Seed: 1})

	if !v.handleInput(key('x')) {
		t.Error("unbound key should not quit")
	}
	if v.handleInput(key('q')) {
		t.Error("q should quit")
	}
	if v.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should quit")
	}
}

func TestViewerStopsAtRetryLimit(t *testing.T) {
	empty, _ := wfc.NewModel(nil)
	v, _ := newTestViewer(t, wfc.Config{Width: 2, Height: 1, Seed: 1, Model: empty, MaxResets: 2})

	now := time.Now()
	for i := 1; i <= 5; i++ {
		v.update(now.Add(time.Duration(i) * time.Millisecond))
	}
	if v.failed == nil {
		t.Fatal("viewer did not record retry limit")
	}
	if got := v.driver.Stats().Contradictions; got != 2 {
		t.Errorf("contradictions = %d, want 2", got)
	}

	v.handleInput(key('r'))
	if v.failed != nil || v.driver.State() != wfc.StateReady {
		t.Error("reset should clear the failure")
	}
}

func TestViewerDrawsGrid(t *testing.T) {
	v, s := newTestViewer(t, wfc.Config{Width: 3, Height: 3, Seed: 4, Mode: wfc.ModeRun})
	v.step()
	v.draw()

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			r, _, _, _ := s.GetContent(v.view.OriginX+x*2, v.view.OriginY+y)
			want := []rune{'·', '↑', '←', '→', '↓'}[v.out[y][x]]
			if r != want {
				t.Errorf("cell (%d,%d) drew %q, want %q", x, y, r, want)
			}
		}
	}
}
