// Package axis provides analog input sources for activation bindings.
//
// A Source reports one momentary magnitude per call, nominally in
// [-1, 1]. The sampler reads every bound source exactly once per tick
// and never validates or clamps what it gets back; any shaping is the
// source's own business, composed from the decorators in this package:
//
//	stick := axis.Deadzone(axis.Invert(raw), 0.15)
//
// Virtual is a settable source for programmatic feeds, Func adapts a
// closure, and Buttons emulates an axis from two digital keys.
package axis
