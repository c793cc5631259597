package sampler

import (
	"time"

	"github.com/dshills/inputpulse/internal/input/binding"
	"github.com/dshills/inputpulse/internal/input/device"
	"github.com/dshills/inputpulse/internal/input/hittest"
	"github.com/dshills/inputpulse/internal/logging"
)

// Config configures a Sampler. The zero value is usable: it describes
// a channel with no inputs and no debounce that never activates.
type Config struct {
	// Binding names the keys and axes that drive the channel.
	Binding binding.Binding

	// Device answers per-tick edge queries. Defaults to device.Nop.
	Device device.Query

	// HitTester resolves the hovered target for object triggers.
	// Defaults to hittest.None.
	HitTester hittest.Tester

	// Triggers seeds the object trigger set. The set can be mutated
	// later with AddTrigger and RemoveTrigger.
	Triggers []hittest.Target

	// TouchCooldown is the minimum interval between accepted touch
	// begin edges. Zero or negative disables debouncing.
	TouchCooldown time.Duration

	// Clock supplies the current time for debounce bookkeeping.
	// Defaults to time.Now.
	Clock func() time.Time

	// Logger receives per-transition debug lines. Defaults to
	// logging.Null.
	Logger *logging.Logger
}

// DefaultConfig returns a configuration with the standard touch
// cooldown.
func DefaultConfig() Config {
	return Config{
		TouchCooldown: 100 * time.Millisecond,
	}
}
