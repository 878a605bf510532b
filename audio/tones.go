package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator produces a sine tone with an exponential fade
type ToneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	amp   float64
	decay float64 // fade rate per second
	pos   int
}

// NewToneGenerator creates a fading sine tone
func NewToneGenerator(sr beep.SampleRate, freq, amp, decay float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, amp: amp, decay: decay}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := g.amp * math.Exp(-t*g.decay) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low harmonic buzz
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		// 20ms fade-in avoids a click
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// tick is the per-collapse click
func tick(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(15*time.Millisecond), NewToneGenerator(sr, 1760, 0.05, 120))
}

// buzz marks a contradiction reset
func buzz(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(150*time.Millisecond), NewBuzzGenerator(sr, 120))
}

// chime marks a completed grid: rising fifth
func chime(sr beep.SampleRate) beep.Streamer {
	note := sr.N(120 * time.Millisecond)
	return beep.Seq(
		beep.Take(note, NewToneGenerator(sr, 660, 0.2, 6)),
		beep.Take(note*2, NewToneGenerator(sr, 990, 0.2, 4)),
	)
}
