package config

import (
	"errors"
	"strings"
	"time"

	"github.com/dshills/inputpulse/internal/input/key"
)

// Duration is a time.Duration that marshals as a string ("100ms") in
// both TOML and JSON.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String formats the duration.
func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Profile describes the activation channels to build.
type Profile struct {
	// TouchCooldown is the default touch debounce window for every
	// channel that does not override it.
	TouchCooldown Duration `toml:"touch_cooldown" json:"touch_cooldown"`

	// Channels maps channel names to their input descriptions.
	// Channel names become event topic segments, so they must not
	// contain separators or wildcards.
	Channels map[string]Channel `toml:"channels" json:"channels"`
}

// Channel describes the inputs of one activation channel.
type Channel struct {
	// Keys lists bound key names, resolved with key.FromName.
	Keys []string `toml:"keys" json:"keys,omitempty"`

	// Axes lists bound axis references in tie-break order.
	Axes []AxisRef `toml:"axes" json:"axes,omitempty"`

	// Triggers seeds the object trigger set with string handles.
	Triggers []string `toml:"triggers" json:"triggers,omitempty"`

	// TouchCooldown overrides the profile default when positive.
	TouchCooldown Duration `toml:"touch_cooldown" json:"touch_cooldown,omitempty"`
}

// AxisRef names a registered axis source and its shaping.
type AxisRef struct {
	// Name identifies the source in the axis registry.
	Name string `toml:"name" json:"name"`

	// Deadzone, when in (0, 1), zeroes and rescales small samples.
	Deadzone float64 `toml:"deadzone" json:"deadzone,omitempty"`

	// Invert flips the sample sign.
	Invert bool `toml:"invert" json:"invert,omitempty"`

	// Scale multiplies samples when non-zero. Zero means 1.
	Scale float64 `toml:"scale" json:"scale,omitempty"`
}

// Default returns an empty profile with the standard touch cooldown.
func Default() *Profile {
	return &Profile{
		TouchCooldown: Duration(100 * time.Millisecond),
		Channels:      make(map[string]Channel),
	}
}

// KeyCodes resolves the channel's key names.
func (c Channel) KeyCodes() ([]key.Code, error) {
	if len(c.Keys) == 0 {
		return nil, nil
	}
	codes := make([]key.Code, 0, len(c.Keys))
	var errs []error
	for _, name := range c.Keys {
		code, err := key.FromName(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		codes = append(codes, code)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return codes, nil
}

// Cooldown returns the channel's effective touch cooldown given the
// profile default.
func (c Channel) Cooldown(profileDefault Duration) time.Duration {
	if c.TouchCooldown > 0 {
		return c.TouchCooldown.Std()
	}
	return profileDefault.Std()
}

// Validate checks the whole profile and returns all problems joined.
func (p *Profile) Validate() error {
	var errs []error

	if p.TouchCooldown < 0 {
		errs = append(errs, &ValidationError{
			Field:   "touch_cooldown",
			Message: "must not be negative",
			Value:   p.TouchCooldown.String(),
		})
	}

	for name, ch := range p.Channels {
		if name == "" || strings.ContainsAny(name, ".*|#?@\\ \t") {
			errs = append(errs, &ValidationError{
				Channel: name,
				Field:   "name",
				Message: "must be a single topic segment without separators, wildcards or spaces",
				Value:   name,
			})
		}

		if _, err := ch.KeyCodes(); err != nil {
			errs = append(errs, &ValidationError{
				Channel: name,
				Field:   "keys",
				Message: err.Error(),
				Value:   ch.Keys,
			})
		}

		for i, ref := range ch.Axes {
			if ref.Name == "" {
				errs = append(errs, &ValidationError{
					Channel: name,
					Field:   "axes",
					Message: "axis reference missing name",
					Value:   i,
				})
			}
			if ref.Deadzone < 0 || ref.Deadzone >= 1 {
				errs = append(errs, &ValidationError{
					Channel: name,
					Field:   "axes",
					Message: "deadzone must be in [0, 1)",
					Value:   ref.Deadzone,
				})
			}
		}

		for _, trig := range ch.Triggers {
			if trig == "" {
				errs = append(errs, &ValidationError{
					Channel: name,
					Field:   "triggers",
					Message: "trigger handle must not be empty",
					Value:   trig,
				})
			}
		}

		if ch.TouchCooldown < 0 {
			errs = append(errs, &ValidationError{
				Channel: name,
				Field:   "touch_cooldown",
				Message: "must not be negative",
				Value:   ch.TouchCooldown.String(),
			})
		}
	}

	return errors.Join(errs...)
}
