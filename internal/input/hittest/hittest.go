// Package hittest resolves pointer positions to interactive targets.
//
// The sampler only ever asks one question: what target, if any, is
// under the pointer right now. Tester answers it. Plane is the
// built-in implementation for axis-aligned rectangle regions; anything
// with real scene-graph knowledge can implement Tester directly.
package hittest

// Target is an opaque handle for an interactive object. Targets are
// compared with interface equality, so any comparable value works:
// strings, ints, or pointers to app objects.
type Target any

// Tester reports the target currently under the pointer.
type Tester interface {
	Hovered() (Target, bool)
}

// Func adapts a closure to the Tester interface.
type Func func() (Target, bool)

// Hovered calls the closure.
func (f Func) Hovered() (Target, bool) { return f() }

// None is a Tester that never reports a target.
var None = Func(func() (Target, bool) { return nil, false })
