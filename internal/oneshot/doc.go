// Package oneshot provides single-use asynchronous notification primitives.
//
// The package contains two types:
//
//   - Future[T]: a value that is resolved at most once. Consumers await it
//     with a context; producers resolve it with TryResolve, which is a
//     silent no-op after the first resolution.
//   - Signal: a latch that fires at most once and stays fired forever.
//     Consumers hold a Token view; producers call Fire, which is idempotent
//     and releases subscriber references on the first call.
//
// Both types are safe for concurrent use. Neither can be reset: a consumer
// that needs to observe a later occurrence must obtain a fresh instance from
// whatever owns the primitive.
package oneshot
