// Package sampler reconciles heterogeneous input sources into one
// activation signal per tick.
//
// A Sampler owns a single activation channel: a float64 value where 0
// means inactive and any non-zero value means active. Once per tick
// the driver calls Sample, which runs three passes in fixed order:
//
//  1. Digital keys. Every key edge applies the setter unconditionally,
//     in binding order. A down edge sets 1, an up edge sets 0.
//  2. Analog axes. All bound axes are sampled; the sample with the
//     greatest absolute magnitude is selected, first-listed winning
//     exact ties. The setter runs only if the selection differs from
//     the stored value.
//  3. Object triggers. A begin edge (pointer press, or a touch begin
//     that survives the cooldown) activates the channel when the
//     hovered target is in the trigger set. An end edge (pointer
//     release or touch end) deactivates it unconditionally.
//
// Later passes overwrite earlier ones within the same tick: the last
// setter call wins across sources.
//
// # Observing transitions
//
// Synchronous consumers poll IsActive, Value, StartedThisTick and
// EndedThisTick. Asynchronous consumers use the one-shot registry:
// NextTransition, NextStart and NextEnd hand out pending futures,
// StartToken and EndToken hand out one-shot cancellation tokens. Each
// pending instance is shared by everyone who asks before it fires and
// is cleared the moment it fires, so asking again afterwards arms a
// fresh instance bound to the next transition.
//
// Every setter call resolves waiters in a fixed order: the transition
// waiter, then the directional waiter, then the directional cancel
// signal, and only then the OnStart/OnEnd broadcast. Signal.Notify
// callbacks and broadcast listeners therefore always observe already
// resolved futures for the same transition.
//
// # Goroutines
//
// Sample must be called from one goroutine at a time; a reentrant call
// from a listener panics. Everything else (queries, trigger mutation,
// waiter requests, listener registration) is safe from any goroutine
// at any time, taking effect no later than the next tick. Listener
// callbacks run on the driver goroutine with no sampler locks held, so
// they may query the sampler and re-arm waiters freely.
//
// Abandoning a Sampler abandons its pending waiters: they are never
// resolved and never rejected. Await takes a context so callers bring
// their own deadline discipline.
package sampler
