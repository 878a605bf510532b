// Package status keeps named runtime metrics shared between goroutines.
package status

import "sync/atomic"

// Registry groups counters, gauges and labels
// Writers cache metric pointers at setup; readers take a Snapshot
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
	Labels   *MetricMap[Label]
}

func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
		Labels:   NewMetricMap[Label](),
	}
}

// Snapshot copies current values into a flat map suitable for JSON encoding
func (r *Registry) Snapshot() map[string]any {
	snap := make(map[string]any, r.Counters.Count()+r.Gauges.Count()+r.Labels.Count())
	r.Counters.Range(func(k string, v *atomic.Int64) { snap[k] = v.Load() })
	r.Gauges.Range(func(k string, v *Gauge) { snap[k] = v.Get() })
	r.Labels.Range(func(k string, v *Label) { snap[k] = v.Load() })
	return snap
}
