package oneshot

import (
	"context"
	"sync"
)

// Future is a single-use asynchronous value.
//
// A Future starts unresolved. The first TryResolve call stores the value and
// wakes all waiters; every later call is a silent no-op. A Future that is
// never resolved blocks its waiters until their context expires, so the
// caller must bound the wait.
type Future[T any] struct {
	mu       sync.Mutex
	done     chan struct{}
	value    T
	resolved bool
}

// NewFuture creates an unresolved future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// TryResolve resolves the future with value and wakes all waiters.
// It returns false, without side effects, if the future is already resolved.
func (f *Future[T]) TryResolve(value T) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.resolved {
		return false
	}
	f.value = value
	f.resolved = true
	close(f.done)
	return true
}

// Resolved reports whether the future has been resolved.
func (f *Future[T]) Resolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved
}

// Value returns the resolved value. The second return is false while the
// future is unresolved.
func (f *Future[T]) Value() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.resolved
}

// Done returns a channel that is closed when the future resolves.
// It is usable in select statements alongside other channels.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future resolves or the context expires.
// On resolution it returns the value; otherwise it returns the context error.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		// The value is immutable once done is closed.
		return f.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
