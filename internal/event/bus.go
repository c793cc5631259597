package event

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Stats are cumulative bus counters.
type Stats struct {
	// Published counts PublishSync calls that passed validation.
	Published uint64
	// Delivered counts successful handler invocations.
	Delivered uint64
	// HandlerErrors counts handler invocations that returned an error.
	HandlerErrors uint64
	// HandlerPanics counts handler invocations that panicked.
	HandlerPanics uint64
}

// Bus delivers events to subscriptions synchronously, in priority then
// registration order. The zero value is not usable; call NewBus.
type Bus struct {
	mu   sync.Mutex
	subs []*Subscription
	seq  uint64

	published     atomic.Uint64
	delivered     atomic.Uint64
	handlerErrors atomic.Uint64
	handlerPanics atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for every concrete topic the pattern
// covers.
func (b *Bus) Subscribe(pattern Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if err := pattern.Validate(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	sub := newSubscription(pattern, handler, b.seq, opts...)
	b.subs = append(b.subs, sub)
	sort.SliceStable(b.subs, func(i, j int) bool {
		if b.subs[i].priority != b.subs[j].priority {
			return b.subs[i].priority < b.subs[j].priority
		}
		return b.subs[i].seq < b.subs[j].seq
	})
	return sub, nil
}

// SubscribeFunc registers a function handler.
func (b *Bus) SubscribeFunc(pattern Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe removes a subscription from the bus.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == sub {
			sub.cancel()
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish wraps the payload in a fresh event and delivers it.
func (b *Bus) Publish(ctx context.Context, topic Topic, payload any) error {
	return b.PublishSync(ctx, New(topic, payload))
}

// PublishSync delivers the event to every matching live subscription
// on the caller's goroutine. Handler errors and panics are collected
// and returned joined; they never stop delivery to later handlers.
func (b *Bus) PublishSync(ctx context.Context, evt Event) error {
	if err := evt.Topic.Validate(); err != nil {
		return err
	}
	if evt.Topic.IsPattern() {
		return fmt.Errorf("%w: cannot publish to pattern %q", ErrInvalidTopic, evt.Topic)
	}
	b.published.Add(1)

	// Snapshot matches under the lock, dispatch outside it, so
	// handlers can subscribe and unsubscribe freely.
	b.mu.Lock()
	matched := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.Active() && sub.pattern.Matches(evt.Topic) {
			matched = append(matched, sub)
		}
	}
	b.mu.Unlock()

	var errs []error
	for _, sub := range matched {
		if !sub.Active() {
			continue
		}
		if err := b.deliver(ctx, sub, evt); err != nil {
			errs = append(errs, &HandlerError{
				SubscriptionID: sub.id,
				Topic:          evt.Topic,
				Err:            err,
			})
		}
		if sub.once {
			b.drop(sub)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) deliver(ctx context.Context, sub *Subscription, evt Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()

	if err = sub.handler.Handle(ctx, evt); err != nil {
		b.handlerErrors.Add(1)
		return err
	}
	b.delivered.Add(1)
	return nil
}

func (b *Bus) drop(sub *Subscription) {
	sub.cancel()
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// SubscriptionCount returns the number of live subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Stats returns cumulative counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		HandlerErrors: b.handlerErrors.Load(),
		HandlerPanics: b.handlerPanics.Load(),
	}
}
