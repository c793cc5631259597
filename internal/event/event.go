package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one published occurrence.
type Event struct {
	// ID uniquely identifies this occurrence.
	ID uuid.UUID

	// Topic is the concrete topic the event was published under.
	Topic Topic

	// Timestamp records when the event was created.
	Timestamp time.Time

	// Payload carries the event data.
	Payload any
}

// New creates an event for the given topic and payload.
func New(topic Topic, payload any) Event {
	return Event{
		ID:        uuid.New(),
		Topic:     topic,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// Handler processes delivered events.
type Handler interface {
	Handle(ctx context.Context, evt Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, evt Event) error

// Handle calls the function.
func (f HandlerFunc) Handle(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Typed wraps a payload-typed function as a Handler. Events whose
// payload is not a T are silently skipped.
func Typed[T any](fn func(ctx context.Context, payload T) error) Handler {
	return HandlerFunc(func(ctx context.Context, evt Event) error {
		payload, ok := evt.Payload.(T)
		if !ok {
			return nil
		}
		return fn(ctx, payload)
	})
}
