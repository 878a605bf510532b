package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/wavetrack/status"
	"github.com/lixenwraith/wavetrack/wfc"
)

// Generator steps a driver on a fixed cadence and publishes each frame
// The driver is owned by the goroutine calling Tick or Run
type Generator struct {
	driver    *wfc.Driver
	out       [][]wfc.Tile
	hub       *Hub
	interval  time.Duration
	hold      time.Duration
	onOutcome func(wfc.Outcome)

	frames   *atomic.Int64
	restarts *atomic.Int64
	stepMs   *status.Gauge
	state    *status.Label
}

// NewGenerator records its metrics in the hub's registry
func NewGenerator(d *wfc.Driver, hub *Hub, interval, hold time.Duration) *Generator {
	reg := hub.Metrics()
	return &Generator{
		driver:   d,
		out:      wfc.NewOutput(d.Width(), d.Height()),
		hub:      hub,
		interval: interval,
		hold:     hold,
		frames:   reg.Counters.Get("frames"),
		restarts: reg.Counters.Get("restarts"),
		stepMs:   reg.Gauges.Get("step_ms"),
		state:    reg.Labels.Get("state"),
	}
}

// OnOutcome registers a callback fired after every step (audio cues)
func (g *Generator) OnOutcome(fn func(wfc.Outcome)) {
	g.onOutcome = fn
}

// Tick runs one driver step and broadcasts the resulting frame
// A driver that hit its reset limit is restarted
func (g *Generator) Tick() (Frame, error) {
	start := time.Now()
	outcome, err := g.driver.Step(g.out)
	g.stepMs.Set(float64(time.Since(start).Microseconds()) / 1000)
	switch {
	case errors.Is(err, wfc.ErrRetryLimit):
		log.Printf("stream: %v, restarting", err)
		g.restarts.Add(1)
		g.driver.Reset(g.out)
	case err != nil:
		return Frame{}, err
	}

	frame := NewFrame(g.driver, g.out, outcome)
	msg, err := json.Marshal(frame)
	if err != nil {
		return frame, err
	}
	g.hub.Broadcast(msg)
	g.frames.Add(1)
	g.state.Store(frame.State)

	if g.onOutcome != nil {
		g.onOutcome(outcome)
	}
	return frame, nil
}

// Run ticks until ctx is cancelled, pausing for the hold duration on a finished grid
func (g *Generator) Run(ctx context.Context) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	var holdUntil time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if now.Before(holdUntil) {
				continue
			}
			if _, err := g.Tick(); err != nil {
				log.Printf("stream: generator stopped: %v", err)
				return
			}
			if g.hold > 0 && g.driver.Complete() {
				holdUntil = now.Add(g.hold)
			}
		}
	}
}
