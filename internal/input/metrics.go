package input

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// latencyWindow is the number of recent tick latencies retained for
// avg/max/p99. Power of two so the ring index wraps with a mask. At
// 120 Hz the window covers roughly the last 8.5 seconds.
const latencyWindow = 1024

// Metrics tracks sampling throughput and tick latency.
type Metrics struct {
	ticksTotal       atomic.Uint64
	transitionsTotal atomic.Uint64
	publishErrors    atomic.Uint64
	reloadsTotal     atomic.Uint64

	// Ring of recent tick latencies in nanoseconds. filled grows to
	// latencyWindow and stays there; head is the next write slot.
	mu     sync.RWMutex
	ring   [latencyWindow]int64
	head   int
	filled int

	// All-time worst tick, survives ring eviction.
	peakTickLatency atomic.Int64

	startTime time.Time
	enabled   atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordTick records one full sampling pass and its duration.
func (m *Metrics) RecordTick(latency time.Duration) {
	if !m.enabled.Load() {
		return
	}

	m.ticksTotal.Add(1)

	ns := latency.Nanoseconds()
	for {
		prev := m.peakTickLatency.Load()
		if ns <= prev {
			break
		}
		if m.peakTickLatency.CompareAndSwap(prev, ns) {
			break
		}
	}

	m.mu.Lock()
	m.ring[m.head] = ns
	m.head = (m.head + 1) & (latencyWindow - 1)
	if m.filled < latencyWindow {
		m.filled++
	}
	m.mu.Unlock()
}

// RecordTransition records one activation edge in either direction.
func (m *Metrics) RecordTransition() {
	if !m.enabled.Load() {
		return
	}
	m.transitionsTotal.Add(1)
}

// RecordPublishError records a failed bus publish.
func (m *Metrics) RecordPublishError() {
	if !m.enabled.Load() {
		return
	}
	m.publishErrors.Add(1)
}

// RecordReload records a profile reload.
func (m *Metrics) RecordReload() {
	if !m.enabled.Load() {
		return
	}
	m.reloadsTotal.Add(1)
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	TicksTotal       uint64
	TransitionsTotal uint64
	PublishErrors    uint64
	ReloadsTotal     uint64

	// Aggregated from per-channel sampler stats.
	SetterCalls    uint64
	DroppedTouches uint64

	// Over the latency window, except Peak which is all time.
	AvgTickLatency  time.Duration
	MaxTickLatency  time.Duration
	P99TickLatency  time.Duration
	PeakTickLatency time.Duration

	TicksPerSecond float64

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	window := make([]int64, m.filled)
	copy(window, m.ring[:m.filled])
	m.mu.RUnlock()

	ticks := m.ticksTotal.Load()
	uptime := time.Since(m.startTime)

	snap := MetricsSnapshot{
		TicksTotal:       ticks,
		TransitionsTotal: m.transitionsTotal.Load(),
		PublishErrors:    m.publishErrors.Load(),
		ReloadsTotal:     m.reloadsTotal.Load(),
		PeakTickLatency:  time.Duration(m.peakTickLatency.Load()),
		Uptime:           uptime,
	}

	if uptime > 0 {
		snap.TicksPerSecond = float64(ticks) / uptime.Seconds()
	}

	snap.AvgTickLatency, snap.MaxTickLatency, snap.P99TickLatency = latencyStats(window)
	return snap
}

// latencyStats reduces a window of nanosecond samples to avg, max,
// and p99. The window is sorted in place.
func latencyStats(window []int64) (avg, maxLat, p99 time.Duration) {
	if len(window) == 0 {
		return 0, 0, 0
	}

	var sum int64
	for _, ns := range window {
		sum += ns
	}
	avg = time.Duration(sum / int64(len(window)))

	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	maxLat = time.Duration(window[len(window)-1])

	idx := int(float64(len(window)) * 0.99)
	if idx >= len(window) {
		idx = len(window) - 1
	}
	p99 = time.Duration(window[idx])

	return avg, maxLat, p99
}
