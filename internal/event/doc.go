// Package event provides a synchronous topical bus for fanning
// activation transitions out to the rest of the process.
//
// Topics are dot-separated paths ("input.jump.start"). Subscriptions
// may name an exact topic or a pattern ending in a single "*", which
// matches any deeper topic ("input.jump.*", or just "*" for
// everything).
//
// Delivery is synchronous and ordered: PublishSync invokes matching
// handlers on the caller's goroutine, lowest priority value first,
// registration order within a priority. Handler panics are isolated
// and reported as errors rather than crashing the publisher. There is
// no async queue: activation transitions are frame-synchronous by
// contract, and anything slow belongs on the subscriber's side of a
// channel.
package event
