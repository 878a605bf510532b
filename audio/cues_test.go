package audio

import (
	"testing"

	"github.com/lixenwraith/wavetrack/wfc"
)

// TestCuesGracefulDegradation verifies cues don't panic when not initialized
func TestCuesGracefulDegradation(t *testing.T) {
	c := NewCues()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Cue operations panicked without initialization: %v", r)
		}
	}()

	c.SetTicks(true)
	c.PlayOutcome(wfc.OutcomeCollapsed)
	c.PlayOutcome(wfc.OutcomeContradiction)
	c.PlayOutcome(wfc.OutcomeCompleted)
	c.Cleanup()
}

// TestCuesInitialization verifies cues can be initialized and cleaned up
func TestCuesInitialization(t *testing.T) {
	c := NewCues()

	// Speaker initialization may fail in CI/test environments without audio devices
	if err := c.Initialize(); err != nil {
		t.Logf("Audio initialization failed (expected in test environment): %v", err)
		return
	}

	if err := c.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}
	c.PlayOutcome(wfc.OutcomeCompleted)
	c.Cleanup()
}

func TestCuesServiceLifecycle(t *testing.T) {
	c := NewCues()
	if c.Name() != "audio" || c.Dependencies() != nil {
		t.Errorf("unexpected service identity %q %v", c.Name(), c.Dependencies())
	}
	if err := c.Init(true); err != nil {
		t.Fatal(err)
	}
	if !c.Muted() {
		t.Error("Init(true) should mute")
	}
	// Muted start never touches the device
	if err := c.Start(); err != nil {
		t.Errorf("Start returned %v", err)
	}
	if err := c.Stop(); err != nil {
		t.Errorf("Stop returned %v", err)
	}
	if err := c.Stop(); err != nil {
		t.Errorf("second Stop returned %v", err)
	}
}
