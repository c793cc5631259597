package oneshot

import (
	"context"
	"sync"
)

// Signal is a single-use latch. Once fired it stays fired forever; there is
// no way to reset it. Owners hold the *Signal and call Fire; consumers hold
// a Token view obtained from Token.
type Signal struct {
	mu    sync.Mutex
	fired bool
	done  chan struct{}
	subs  []func()
}

// NewSignal creates an unfired signal.
func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Fire trips the signal. The first call closes the done channel, invokes
// subscribers in registration order, and releases all subscriber references.
// Later calls return false and do nothing.
func (s *Signal) Fire() bool {
	s.mu.Lock()
	if s.fired {
		s.mu.Unlock()
		return false
	}
	s.fired = true
	subs := s.subs
	s.subs = nil
	close(s.done)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return true
}

// Signaled reports whether the signal has fired.
func (s *Signal) Signaled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}

// Done returns a channel that is closed when the signal fires.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Notify registers fn to run when the signal fires. If the signal has
// already fired, fn runs synchronously before Notify returns. Subscribers
// run in registration order on the goroutine that calls Fire.
func (s *Signal) Notify(fn func()) {
	s.mu.Lock()
	if s.fired {
		s.mu.Unlock()
		fn()
		return
	}
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Token returns a read-only view of the signal.
func (s *Signal) Token() Token {
	return Token{s: s}
}

// Token is a consumer-side view of a Signal. The zero Token is valid and is
// never signaled.
type Token struct {
	s *Signal
}

// Signaled reports whether the underlying signal has fired.
func (t Token) Signaled() bool {
	if t.s == nil {
		return false
	}
	return t.s.Signaled()
}

// Done returns a channel that is closed when the underlying signal fires.
// For the zero Token it returns nil, which blocks forever in a select.
func (t Token) Done() <-chan struct{} {
	if t.s == nil {
		return nil
	}
	return t.s.done
}

// Wait blocks until the signal fires or the context expires.
func (t Token) Wait(ctx context.Context) error {
	select {
	case <-t.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
