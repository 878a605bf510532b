// Package audio plays short tones for generation events.
// Audio is optional: every call is a no-op until Initialize succeeds.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/wavetrack/wfc"
)

const sampleRate = beep.SampleRate(44100)

// Cues maps driver outcomes to sounds
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	ticks       bool
}

// NewCues creates an uninitialized cue player
func NewCues() *Cues {
	return &Cues{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker; failure leaves the player silent
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences all pending sounds
func (c *Cues) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// SetMuted toggles output without releasing the speaker
func (c *Cues) SetMuted(muted bool) {
	c.mu.Lock()
	c.muted = muted
	c.mu.Unlock()
}

// Muted reports the mute state
func (c *Cues) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// SetTicks enables the per-collapse click
func (c *Cues) SetTicks(on bool) {
	c.mu.Lock()
	c.ticks = on
	c.mu.Unlock()
}

// PlayOutcome plays the sound for a driver step outcome
func (c *Cues) PlayOutcome(o wfc.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.muted {
		return
	}

	var s beep.Streamer
	switch o {
	case wfc.OutcomeCollapsed:
		if !c.ticks {
			return
		}
		s = tick(sampleRate)
	case wfc.OutcomeContradiction:
		s = buzz(sampleRate)
	case wfc.OutcomeCompleted:
		s = chime(sampleRate)
	default:
		return
	}

	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Name implements service.Service
func (c *Cues) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (c *Cues) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: bool - start muted
func (c *Cues) Init(args ...any) error {
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok {
			c.SetMuted(muted)
		}
	}
	return nil
}

// Start implements service.Service; a missing audio device is not an error
func (c *Cues) Start() error {
	if c.Muted() {
		return nil
	}
	_ = c.Initialize()
	return nil
}

// Stop implements service.Service
func (c *Cues) Stop() error {
	c.Cleanup()
	return nil
}
