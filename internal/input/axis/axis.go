package axis

import (
	"math"
	"sync/atomic"
)

// Source reports the momentary magnitude of an analog input.
//
// Sample is called once per tick per binding that references the
// source. Implementations must be safe for concurrent use if they are
// shared across bindings sampled from different drivers.
type Source interface {
	Sample() float64
}

// Func adapts a closure to the Source interface.
type Func func() float64

// Sample calls the closure.
func (f Func) Sample() float64 { return f() }

// Virtual is a settable axis source. Writers call Set from any
// goroutine; the sampler reads the latest value on its next tick.
type Virtual struct {
	bits atomic.Uint64
}

// NewVirtual creates a virtual axis with the given initial magnitude.
func NewVirtual(initial float64) *Virtual {
	v := &Virtual{}
	v.Set(initial)
	return v
}

// Set stores the magnitude.
func (v *Virtual) Set(magnitude float64) {
	v.bits.Store(math.Float64bits(magnitude))
}

// Sample returns the most recently stored magnitude.
func (v *Virtual) Sample() float64 {
	return math.Float64frombits(v.bits.Load())
}

// Constant returns a source that always reports the same magnitude.
func Constant(magnitude float64) Source {
	return Func(func() float64 { return magnitude })
}
