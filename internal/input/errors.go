package input

import "errors"

var (
	// ErrNilProfile is returned when a manager is created or reloaded
	// without a profile.
	ErrNilProfile = errors.New("input: nil profile")

	// ErrUnknownAxis is returned when a channel references an axis
	// name absent from the registry.
	ErrUnknownAxis = errors.New("input: unknown axis")
)
