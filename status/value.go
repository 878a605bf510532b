package status

import (
	"math"
	"sync/atomic"
)

// Gauge is an atomic float64; zero value reads 0.0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(val float64) {
	g.bits.Store(math.Float64bits(val))
}

func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// MaxLabelLen bounds stored label values
const MaxLabelLen = 32

// Label is an atomic short string; zero value reads ""
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, truncating to MaxLabelLen bytes
func (l *Label) Store(val string) {
	if len(val) > MaxLabelLen {
		val = val[:MaxLabelLen]
	}
	l.ptr.Store(&val)
}

func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
