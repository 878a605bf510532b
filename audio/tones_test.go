package audio

import (
	"math"
	"testing"
	"time"
)

func TestToneGeneratorFades(t *testing.T) {
	g := NewToneGenerator(sampleRate, 440, 0.5, 10)
	buf := make([][2]float64, sampleRate.N(time.Second))

	n, ok := g.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}

	peak := func(from, to int) float64 {
		m := 0.0
		for _, s := range buf[from:to] {
			m = math.Max(m, math.Abs(s[0]))
			if s[0] != s[1] {
				t.Fatal("channels differ")
			}
		}
		return m
	}
	head := peak(0, len(buf)/10)
	tail := peak(len(buf)*9/10, len(buf))
	if head > 0.5 || head < 0.1 {
		t.Errorf("head peak %v out of range", head)
	}
	if tail >= head/10 {
		t.Errorf("tone did not fade: head %v tail %v", head, tail)
	}
	if g.Err() != nil {
		t.Error("unexpected Err")
	}
}

func TestBuzzGeneratorStartsSilent(t *testing.T) {
	g := NewBuzzGenerator(sampleRate, 120)
	buf := make([][2]float64, 64)
	g.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample %v, want 0 under fade-in", buf[0][0])
	}
}

func TestCueStreamsTerminate(t *testing.T) {
	for name, s := range map[string]interface {
		Stream([][2]float64) (int, bool)
	}{
		"tick":  tick(sampleRate),
		"buzz":  buzz(sampleRate),
		"chime": chime(sampleRate),
	} {
		buf := make([][2]float64, 512)
		total := 0
		for i := 0; i < 10000; i++ {
			n, ok := s.Stream(buf)
			total += n
			if !ok {
				break
			}
		}
		if total == 0 || total > sampleRate.N(time.Second) {
			t.Errorf("%s streamed %d samples", name, total)
		}
	}
}
