package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for the bus.
var (
	// ErrInvalidTopic is returned for empty or malformed topics.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler is returned when a nil handler is subscribed.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrSubscriptionNotFound is returned when unsubscribing a
	// subscription the bus does not hold.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrHandlerPanic is returned when a handler panics during
	// delivery.
	ErrHandlerPanic = errors.New("handler panicked")
)

// HandlerError wraps a delivery failure with its subscription context.
type HandlerError struct {
	// SubscriptionID identifies the failing subscription.
	SubscriptionID string

	// Topic is the concrete topic being delivered.
	Topic Topic

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler error for subscription %s on topic %s: %v",
		e.SubscriptionID, e.Topic, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
