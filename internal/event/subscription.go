package event

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Priority orders delivery within one publish. Lower values run first.
type Priority int

// Standard priorities.
const (
	PriorityHigh   Priority = -100
	PriorityNormal Priority = 0
	PriorityLow    Priority = 100
)

// Subscription is one registered handler on the bus.
type Subscription struct {
	id       string
	pattern  Topic
	handler  Handler
	priority Priority
	once     bool
	seq      uint64

	cancelled atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Pattern returns the subscribed topic pattern.
func (s *Subscription) Pattern() Topic { return s.pattern }

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool { return !s.cancelled.Load() }

// cancel marks the subscription dead. The bus prunes it on the next
// publish or unsubscribe.
func (s *Subscription) cancel() { s.cancelled.Store(true) }

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*Subscription)

// WithPriority sets the delivery priority. Lower values run first.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *Subscription) { s.priority = p }
}

// Once cancels the subscription automatically after its first
// delivery.
func Once() SubscriptionOption {
	return func(s *Subscription) { s.once = true }
}

func newSubscription(pattern Topic, handler Handler, seq uint64, opts ...SubscriptionOption) *Subscription {
	sub := &Subscription{
		id:       uuid.NewString(),
		pattern:  pattern,
		handler:  handler,
		priority: PriorityNormal,
		seq:      seq,
	}
	for _, opt := range opts {
		opt(sub)
	}
	return sub
}
