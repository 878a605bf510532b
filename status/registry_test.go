package status

import (
	"strings"
	"sync"
	"testing"
)

func TestMetricMapStablePointers(t *testing.T) {
	r := NewRegistry()
	a := r.Counters.Get("frames")
	b := r.Counters.Get("frames")
	if a != b {
		t.Fatal("Get returned different pointers for the same key")
	}
	if r.Counters.Count() != 1 {
		t.Errorf("Count = %d, want 1", r.Counters.Count())
	}
}

func TestConcurrentCounters(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := r.Counters.Get("steps")
			for j := 0; j < 1000; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()
	if got := r.Counters.Get("steps").Load(); got != 8000 {
		t.Errorf("steps = %d, want 8000", got)
	}
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Counters.Get("frames").Store(3)
	r.Gauges.Get("step_ms").Set(1.5)
	r.Labels.Get("state").Store("Collapsed")

	snap := r.Snapshot()
	if snap["frames"] != int64(3) || snap["step_ms"] != 1.5 || snap["state"] != "Collapsed" {
		t.Errorf("snapshot = %v", snap)
	}
}

func TestLabelTruncates(t *testing.T) {
	var l Label
	if l.Load() != "" {
		t.Error("zero label should be empty")
	}
	l.Store(strings.Repeat("x", MaxLabelLen+10))
	if len(l.Load()) != MaxLabelLen {
		t.Errorf("label length %d, want %d", len(l.Load()), MaxLabelLen)
	}
}

func TestRangeSorted(t *testing.T) {
	m := NewMetricMap[Gauge]()
	for _, k := range []string{"c", "a", "b"} {
		m.Get(k)
	}
	var keys []string
	m.Range(func(k string, _ *Gauge) { keys = append(keys, k) })
	if strings.Join(keys, "") != "abc" {
		t.Errorf("Range order %v", keys)
	}
}
