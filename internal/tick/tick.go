// Package tick drives a sampling function at a fixed rate.
//
// The driver owns the tick counter and guarantees the function is
// called from a single goroutine with strictly increasing tick
// numbers starting at zero. Missed intervals are not replayed; when a
// callback overruns the interval the next tick fires late and the
// counter still advances by one.
package tick

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dshills/inputpulse/internal/logging"
)

// ErrNilFunc is returned when a driver is created without a callback.
var ErrNilFunc = errors.New("tick: nil func")

// DefaultInterval is the sampling period used when none is configured.
const DefaultInterval = time.Second / 120

// Func is invoked once per tick from the driver's goroutine.
type Func func(tick int64)

// Config holds driver settings.
type Config struct {
	// Interval between ticks. Zero or negative selects DefaultInterval.
	Interval time.Duration

	// Logger for overrun diagnostics. Nil disables logging.
	Logger *logging.Logger
}

// DefaultConfig returns the default driver configuration.
func DefaultConfig() Config {
	return Config{Interval: DefaultInterval}
}

// Driver calls a Func at a fixed rate with monotonically increasing
// tick numbers.
type Driver struct {
	fn       Func
	interval time.Duration
	logger   *logging.Logger
	tick     atomic.Int64
	overruns atomic.Int64
}

// New creates a driver for fn.
func New(fn Func, cfg Config) (*Driver, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Null
	}
	return &Driver{
		fn:       fn,
		interval: interval,
		logger:   logger.WithComponent("tick"),
	}, nil
}

// Interval returns the configured tick period.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Ticks returns how many ticks have run.
func (d *Driver) Ticks() int64 {
	return d.tick.Load()
}

// Overruns returns how many callbacks ran longer than the interval.
func (d *Driver) Overruns() int64 {
	return d.overruns.Load()
}

// Step runs a single tick synchronously and returns its number.
// Step and Run must not be used concurrently.
func (d *Driver) Step() int64 {
	n := d.tick.Load()
	start := time.Now()
	d.fn(n)
	if elapsed := time.Since(start); elapsed > d.interval {
		d.overruns.Add(1)
		d.logger.Debug("tick %d overran: %v > %v", n, elapsed, d.interval)
	}
	d.tick.Store(n + 1)
	return n
}

// Run steps the driver at the configured rate until ctx is cancelled,
// then returns nil. Ticks continue from wherever Step left off.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("tick driver running: interval=%v", d.interval)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("tick driver stopped after %d ticks", d.Ticks())
			return nil
		case <-ticker.C:
			d.Step()
		}
	}
}
