// Package device defines how input hardware reports per-tick edges to
// the sampler.
//
// The sampler never talks to hardware. It sees a Query: six questions
// about what happened since the previous tick. Adapters (terminal,
// script) collect raw events on their own schedule and fold them into
// a State, the canonical Query implementation, which the driver resets
// between ticks.
//
// # Edges, not levels
//
// A Query reports transitions. "Key down edge" means the key went from
// up to down since the last tick, not that it is currently held. Held
// state is still tracked by State (Held) because button-emulated axes
// need it, but the sampler itself consumes edges only.
package device
