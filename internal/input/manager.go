package input

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/inputpulse/internal/config"
	"github.com/dshills/inputpulse/internal/event"
	"github.com/dshills/inputpulse/internal/input/axis"
	"github.com/dshills/inputpulse/internal/input/binding"
	"github.com/dshills/inputpulse/internal/input/device"
	"github.com/dshills/inputpulse/internal/input/hittest"
	"github.com/dshills/inputpulse/internal/input/sampler"
	"github.com/dshills/inputpulse/internal/logging"
)

// Deps carries the runtime collaborators shared by every channel.
// Zero fields get safe defaults: a no-op device, a miss-everything
// hit tester, time.Now, and a disabled logger. A nil Bus disables
// transition publishing.
type Deps struct {
	Device    device.Query
	HitTester hittest.Tester
	Axes      AxisRegistry
	Clock     func() time.Time
	Logger    *logging.Logger
	Bus       *event.Bus
}

// Manager owns the named activation channels built from a profile.
type Manager struct {
	deps    Deps
	logger  *logging.Logger
	metrics *Metrics
	tick    atomic.Int64

	mu       sync.RWMutex
	profile  *config.Profile
	channels map[string]*sampler.Sampler
	names    []string
}

// New builds a manager from profile. The profile is validated; any
// channel that names an unknown key or axis fails construction.
func New(profile *config.Profile, deps Deps) (*Manager, error) {
	if deps.Logger == nil {
		deps.Logger = logging.Null
	}
	m := &Manager{
		deps:    deps,
		logger:  deps.Logger.WithComponent("input"),
		metrics: NewMetrics(),
	}
	if err := m.Reload(profile); err != nil {
		return nil, err
	}
	return m, nil
}

// Sample advances every channel one tick, in sorted name order.
// Transition handlers and bus subscribers run synchronously inside
// this call.
func (m *Manager) Sample(tick int64) {
	m.tick.Store(tick)

	m.mu.RLock()
	names := m.names
	channels := m.channels
	m.mu.RUnlock()

	start := time.Now()
	for _, name := range names {
		channels[name].Sample(tick)
	}
	m.metrics.RecordTick(time.Since(start))
}

// Channel returns the sampler for name.
func (m *Manager) Channel(name string) (*sampler.Sampler, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.channels[name]
	return s, ok
}

// Names returns the channel names in the order Sample visits them.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// Profile returns the profile the current channel set was built from.
func (m *Manager) Profile() *config.Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile
}

// Reload builds a replacement channel set from profile and swaps it
// in. On error the current set stays in effect. Futures armed on
// replaced channels are abandoned, never resolved.
func (m *Manager) Reload(profile *config.Profile) error {
	if profile == nil {
		return ErrNilProfile
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	channels := make(map[string]*sampler.Sampler, len(profile.Channels))
	names := make([]string, 0, len(profile.Channels))
	for name, ch := range profile.Channels {
		s, err := m.buildChannel(name, ch, profile)
		if err != nil {
			return fmt.Errorf("channel %s: %w", name, err)
		}
		channels[name] = s
		names = append(names, name)
	}
	sort.Strings(names)

	m.mu.Lock()
	first := m.profile == nil
	m.profile = profile
	m.channels = channels
	m.names = names
	m.mu.Unlock()

	if !first {
		m.metrics.RecordReload()
	}
	m.logger.Info("channels built: %d", len(names))
	return nil
}

// Metrics returns a point-in-time view of manager counters merged
// with per-channel sampler stats.
func (m *Manager) Metrics() MetricsSnapshot {
	snap := m.metrics.Snapshot()

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.channels {
		stats := s.Stats()
		snap.SetterCalls += uint64(stats.SetterCalls)
		snap.DroppedTouches += uint64(stats.DroppedTouches)
	}
	return snap
}

func (m *Manager) buildChannel(name string, ch config.Channel, profile *config.Profile) (*sampler.Sampler, error) {
	codes, err := ch.KeyCodes()
	if err != nil {
		return nil, err
	}

	sources := make([]axis.Source, 0, len(ch.Axes))
	for _, ref := range ch.Axes {
		src, err := m.deps.Axes.Resolve(ref)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	triggers := make([]hittest.Target, 0, len(ch.Triggers))
	for _, t := range ch.Triggers {
		triggers = append(triggers, t)
	}

	cfg := sampler.DefaultConfig()
	cfg.Binding = binding.New().WithKeys(codes...).WithAxes(sources...)
	cfg.Device = m.deps.Device
	cfg.HitTester = m.deps.HitTester
	cfg.Triggers = triggers
	cfg.TouchCooldown = ch.Cooldown(profile.TouchCooldown)
	cfg.Clock = m.deps.Clock
	cfg.Logger = m.logger.WithField("channel", name)

	s := sampler.New(cfg)
	m.republish(name, s)
	return s, nil
}

// republish forwards the channel's transitions to the bus. The hooks
// live as long as the sampler; removal is never needed because reload
// abandons the whole sampler.
func (m *Manager) republish(name string, s *sampler.Sampler) {
	s.OnStart(func() {
		m.metrics.RecordTransition()
		m.publish(TopicStart(name), name, s, true)
	})
	s.OnEnd(func() {
		m.metrics.RecordTransition()
		m.publish(TopicEnd(name), name, s, false)
	})
}

func (m *Manager) publish(topic event.Topic, name string, s *sampler.Sampler, active bool) {
	if m.deps.Bus == nil {
		return
	}
	t := Transition{
		Channel: name,
		Tick:    m.tick.Load(),
		Value:   s.Value(),
		Active:  active,
	}
	if err := m.deps.Bus.Publish(context.Background(), topic, t); err != nil {
		m.metrics.RecordPublishError()
		m.logger.Warn("transition publish failed: topic=%s err=%v", topic, err)
	}
}
