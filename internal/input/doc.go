// Package input manages named activation channels.
//
// A Manager owns one sampler per named channel, built from a
// config.Profile against a shared set of runtime dependencies (the
// device query, a hit tester, named axis sources, a clock, a logger,
// and an event bus). Sample(tick) advances every channel in sorted
// name order, so two managers built from the same profile observe
// edges identically.
//
// # Transitions on the bus
//
// When a channel starts or ends activation the manager republishes
// the edge on the bus as input.<channel>.start or input.<channel>.end
// with a Transition payload. Handlers run synchronously inside the
// tick; subscribing to the pattern "input.*" observes every channel.
//
// # Reloading
//
// Reload builds a complete replacement channel set from a new profile
// and swaps it in atomically. Samplers from the old set are abandoned:
// futures armed on them stay pending forever, which is the documented
// destruction contract for samplers.
package input
