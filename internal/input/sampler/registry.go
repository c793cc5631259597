package sampler

import (
	"github.com/google/uuid"

	"github.com/dshills/inputpulse/internal/oneshot"
)

// listener is one broadcast subscriber. The id makes removal stable
// even when the same func is registered twice.
type listener struct {
	id uuid.UUID
	fn func()
}

func snapshot(ls []listener) []func() {
	if len(ls) == 0 {
		return nil
	}
	fns := make([]func(), len(ls))
	for i, l := range ls {
		fns[i] = l.fn
	}
	return fns
}

func removeListener(ls []listener, id uuid.UUID) []listener {
	for i, l := range ls {
		if l.id == id {
			return append(ls[:i], ls[i+1:]...)
		}
	}
	return ls
}

// NextTransition returns the pending any-transition future, creating
// one if absent. It resolves at the next setter call, in either
// direction, with the resulting activation state. Callers asking
// before the transition share one future; asking after it arms a
// fresh one.
func (s *Sampler) NextTransition() *oneshot.Future[bool] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transition == nil {
		s.transition = oneshot.NewFuture[bool]()
	}
	return s.transition
}

// NextStart returns the pending start future, creating one if absent.
// It resolves at the next setter call that lands in the active state.
func (s *Sampler) NextStart() *oneshot.Future[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.start == nil {
		s.start = oneshot.NewFuture[struct{}]()
	}
	return s.start
}

// NextEnd returns the pending end future, creating one if absent. It
// resolves at the next setter call that lands in the inactive state.
func (s *Sampler) NextEnd() *oneshot.Future[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.end == nil {
		s.end = oneshot.NewFuture[struct{}]()
	}
	return s.end
}

// StartToken returns a cancellation token signaled at the next
// transition into the active state. The token is one-shot: once
// signaled it stays signaled forever, and a token requested afterwards
// is a fresh, unsignaled instance.
func (s *Sampler) StartToken() oneshot.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startCancel == nil {
		s.startCancel = oneshot.NewSignal()
	}
	return s.startCancel.Token()
}

// EndToken returns a cancellation token signaled at the next
// transition into the inactive state.
func (s *Sampler) EndToken() oneshot.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endCancel == nil {
		s.endCancel = oneshot.NewSignal()
	}
	return s.endCancel.Token()
}

// OnStart registers a broadcast callback invoked on every setter call
// that lands in the active state, in registration order, after the
// one-shot waiters for the same transition have resolved. The returned
// func removes the registration; it is safe to call more than once.
func (s *Sampler) OnStart(fn func()) (remove func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.startListeners = append(s.startListeners, listener{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.startListeners = removeListener(s.startListeners, id)
	}
}

// OnEnd registers a broadcast callback invoked on every setter call
// that lands in the inactive state. See OnStart.
func (s *Sampler) OnEnd(fn func()) (remove func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.endListeners = append(s.endListeners, listener{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.endListeners = removeListener(s.endListeners, id)
	}
}
