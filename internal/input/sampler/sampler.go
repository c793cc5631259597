package sampler

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/inputpulse/internal/input/binding"
	"github.com/dshills/inputpulse/internal/input/device"
	"github.com/dshills/inputpulse/internal/input/hittest"
	"github.com/dshills/inputpulse/internal/logging"
	"github.com/dshills/inputpulse/internal/oneshot"
)

// Sampler owns one activation channel. See the package documentation
// for the sampling algorithm and the notification contract.
type Sampler struct {
	binding   binding.Binding
	dev       device.Query
	hitTester hittest.Tester
	cooldown  time.Duration
	clock     func() time.Time
	logger    *logging.Logger

	// sampling guards against overlapping or reentrant Sample calls.
	sampling atomic.Bool

	mu                 sync.Mutex
	value              float64
	currentTick        int64
	lastTransitionTick int64
	lastTouch          time.Time
	triggers           map[hittest.Target]struct{}

	transition  *oneshot.Future[bool]
	start       *oneshot.Future[struct{}]
	end         *oneshot.Future[struct{}]
	startCancel *oneshot.Signal
	endCancel   *oneshot.Signal

	startListeners []listener
	endListeners   []listener

	setterCalls    atomic.Int64
	droppedTouches atomic.Int64
}

// Stats are cumulative counters over the sampler's lifetime.
type Stats struct {
	// SetterCalls counts value-setter invocations, including ones
	// that left the activation state unchanged.
	SetterCalls int64
	// DroppedTouches counts touch begin edges discarded by the
	// cooldown window.
	DroppedTouches int64
}

// New creates a sampler. Nil Config capabilities fall back to inert
// defaults, so a zero Config yields a valid, permanently inactive
// channel.
func New(cfg Config) *Sampler {
	if cfg.Device == nil {
		cfg.Device = device.Nop
	}
	if cfg.HitTester == nil {
		cfg.HitTester = hittest.None
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Null
	}

	s := &Sampler{
		binding:   cfg.Binding,
		dev:       cfg.Device,
		hitTester: cfg.HitTester,
		cooldown:  cfg.TouchCooldown,
		clock:     cfg.Clock,
		logger:    cfg.Logger.WithComponent("sampler"),
		triggers:  make(map[hittest.Target]struct{}, len(cfg.Triggers)),

		// -1 keeps StartedThisTick and EndedThisTick false until the
		// first real setter call, whatever tick the driver starts at.
		lastTransitionTick: -1,
	}
	for _, t := range cfg.Triggers {
		s.triggers[t] = struct{}{}
	}
	return s
}

// Sample runs one reconciliation tick. It must not be called
// concurrently with itself or from within a listener callback; doing
// so panics.
func (s *Sampler) Sample(tick int64) {
	if !s.sampling.CompareAndSwap(false, true) {
		panic("sampler: reentrant or concurrent Sample call")
	}
	defer s.sampling.Store(false)

	s.mu.Lock()
	s.currentTick = tick
	s.mu.Unlock()

	s.sampleKeys()
	s.sampleAxes()
	s.sampleTriggers()
}

// sampleKeys applies every key edge in binding order. Edges apply
// unconditionally: a repeated down edge re-runs the setter even though
// the value does not change.
func (s *Sampler) sampleKeys() {
	for _, code := range s.binding.Keys() {
		if s.dev.KeyDownEdge(code) {
			s.setValue(1)
		}
		if s.dev.KeyUpEdge(code) {
			s.setValue(0)
		}
	}
}

// sampleAxes selects the bound sample with the greatest absolute
// magnitude, first-listed winning exact ties, and applies it only when
// it differs from the stored value.
func (s *Sampler) sampleAxes() {
	axes := s.binding.Axes()
	if len(axes) == 0 {
		return
	}

	selected, best := 0.0, -1.0
	for _, src := range axes {
		v := src.Sample()
		if mag := math.Abs(v); mag > best {
			selected, best = v, mag
		}
	}

	s.mu.Lock()
	changed := selected != s.value
	s.mu.Unlock()
	if changed {
		s.setValue(selected)
	}
}

// sampleTriggers handles pointer and touch edges against the trigger
// set. The whole pass is skipped while the set is empty, including
// touch cooldown bookkeeping.
func (s *Sampler) sampleTriggers() {
	s.mu.Lock()
	armed := len(s.triggers) > 0
	s.mu.Unlock()
	if !armed {
		return
	}

	began := s.dev.PointerPressEdge()
	if _, ok := s.dev.TouchBeginEdge(); ok {
		if s.acceptTouch() {
			began = true
		} else {
			s.droppedTouches.Add(1)
			s.logger.Debug("touch begin dropped by cooldown")
		}
	}

	if began {
		if target, ok := s.hitTester.Hovered(); ok && s.isTrigger(target) {
			s.setValue(1)
		}
	}

	if s.dev.PointerReleaseEdge() || s.dev.TouchEndEdge() {
		s.setValue(0)
	}
}

// acceptTouch applies the cooldown window: a begin edge is accepted
// when enough time has passed since the last accepted one. Dropped
// edges do not advance the window.
func (s *Sampler) acceptTouch() bool {
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cooldown > 0 && now.Sub(s.lastTouch) <= s.cooldown {
		return false
	}
	s.lastTouch = now
	return true
}

func (s *Sampler) isTrigger(target hittest.Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.triggers[target]
	return ok
}

// setValue is the single mutation point for the activation value.
// Under the lock it stores the value, stamps the transition tick and
// detaches the pending waiters; the waiters, the cancel signal and the
// broadcast listeners then fire in that order with no locks held.
func (s *Sampler) setValue(v float64) {
	active := v != 0

	s.mu.Lock()
	s.value = v
	s.lastTransitionTick = s.currentTick
	tick := s.currentTick

	transition := s.transition
	s.transition = nil

	var waiter *oneshot.Future[struct{}]
	var cancel *oneshot.Signal
	var fns []func()
	if active {
		waiter, s.start = s.start, nil
		cancel, s.startCancel = s.startCancel, nil
		fns = snapshot(s.startListeners)
	} else {
		waiter, s.end = s.end, nil
		cancel, s.endCancel = s.endCancel, nil
		fns = snapshot(s.endListeners)
	}
	s.mu.Unlock()

	s.setterCalls.Add(1)
	s.logger.Debug("value=%v active=%v tick=%d", v, active, tick)

	if transition != nil {
		transition.TryResolve(active)
	}
	if waiter != nil {
		waiter.TryResolve(struct{}{})
	}
	if cancel != nil {
		cancel.Fire()
	}
	for _, fn := range fns {
		fn()
	}
}

// IsActive reports whether the channel is active (value non-zero).
func (s *Sampler) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value != 0
}

// Value returns the current activation value.
func (s *Sampler) Value() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// StartedThisTick reports whether the channel is active and its most
// recent setter call happened on the current tick.
func (s *Sampler) StartedThisTick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value != 0 && s.lastTransitionTick == s.currentTick
}

// EndedThisTick reports whether the channel is inactive and its most
// recent setter call happened on the current tick.
func (s *Sampler) EndedThisTick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value == 0 && s.lastTransitionTick == s.currentTick
}

// AddTrigger registers an object handle as an activation source.
// Idempotent; takes effect from the next Sample call.
func (s *Sampler) AddTrigger(target hittest.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers[target] = struct{}{}
}

// RemoveTrigger unregisters an object handle. Idempotent.
func (s *Sampler) RemoveTrigger(target hittest.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.triggers, target)
}

// Binding returns the immutable binding this sampler polls.
func (s *Sampler) Binding() binding.Binding {
	return s.binding
}

// Stats returns cumulative counters.
func (s *Sampler) Stats() Stats {
	return Stats{
		SetterCalls:    s.setterCalls.Load(),
		DroppedTouches: s.droppedTouches.Load(),
	}
}
