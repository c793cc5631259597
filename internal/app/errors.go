// Package app wires the sampling probe together and manages its
// lifecycle.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("app: already running")

	// ErrNoProfile indicates no profile path was configured.
	ErrNoProfile = errors.New("app: no profile configured")
)

// InitError wraps a component initialization failure.
type InitError struct {
	Component string
	Err       error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("initialize %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
