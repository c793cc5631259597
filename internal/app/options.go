package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/dshills/inputpulse/internal/logging"
)

// Options configures the probe.
type Options struct {
	// ProfilePath is the activation profile to load (.toml or .json).
	ProfilePath string `env:"INPUTPULSE_PROFILE"`

	// ScriptPath selects the Lua script device instead of the
	// terminal. The probe then runs headless.
	ScriptPath string `env:"INPUTPULSE_SCRIPT"`

	// Rate is the sampling rate in ticks per second.
	Rate int `env:"INPUTPULSE_RATE"`

	// Watch reloads the profile when its file changes.
	Watch bool `env:"INPUTPULSE_WATCH"`

	// LogLevel sets the logging verbosity.
	LogLevel string `env:"INPUTPULSE_LOG_LEVEL"`

	// LogPath appends logs to a file. Empty disables logging in
	// terminal mode, where stderr would corrupt the display.
	LogPath string `env:"INPUTPULSE_LOG"`

	// Debug enables debug logging.
	Debug bool `env:"INPUTPULSE_DEBUG"`
}

// DefaultOptions returns the default probe configuration.
func DefaultOptions() Options {
	return Options{
		Rate:     120,
		Watch:    true,
		LogLevel: "info",
	}
}

// ApplyEnv overlays INPUTPULSE_* environment variables.
func (o *Options) ApplyEnv() error {
	if err := env.Parse(o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the options for usable values. Unrecognized log
// levels are not an error; they fall back to info.
func (o Options) Validate() error {
	if o.ProfilePath == "" {
		return ErrNoProfile
	}
	if o.Rate <= 0 {
		return fmt.Errorf("app: rate must be positive, got %d", o.Rate)
	}
	return nil
}

// level resolves the configured log level, honoring Debug.
func (o Options) level() logging.Level {
	if o.Debug {
		return logging.LevelDebug
	}
	return logging.ParseLevel(o.LogLevel)
}
