package config

import "fmt"

// ParseError reports a profile file that could not be parsed.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Message describes the failure.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a well-formed profile with an invalid value.
type ValidationError struct {
	// Channel is the channel containing the invalid value.
	Channel string
	// Field names the offending field.
	Field string
	// Message describes what is wrong.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Channel == "" {
		return fmt.Sprintf("profile %s: %s (value: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("channel %q %s: %s (value: %v)", e.Channel, e.Field, e.Message, e.Value)
}
