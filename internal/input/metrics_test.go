package input

import (
	"testing"
	"time"
)

func TestMetricsRecordTick(t *testing.T) {
	m := NewMetrics()
	m.RecordTick(2 * time.Millisecond)
	m.RecordTick(4 * time.Millisecond)
	m.RecordTick(1 * time.Millisecond)

	snap := m.Snapshot()
	if snap.TicksTotal != 3 {
		t.Errorf("TicksTotal = %d, want 3", snap.TicksTotal)
	}
	if snap.MaxTickLatency != 4*time.Millisecond {
		t.Errorf("MaxTickLatency = %v, want 4ms", snap.MaxTickLatency)
	}
	if snap.PeakTickLatency != 4*time.Millisecond {
		t.Errorf("PeakTickLatency = %v, want 4ms", snap.PeakTickLatency)
	}
	if want := time.Duration(7) * time.Millisecond / 3; snap.AvgTickLatency != want {
		t.Errorf("AvgTickLatency = %v, want %v", snap.AvgTickLatency, want)
	}
}

func TestMetricsPeakOutlivesBuffer(t *testing.T) {
	m := NewMetrics()
	m.RecordTick(50 * time.Millisecond)
	for i := 0; i < 2*latencyWindow; i++ {
		m.RecordTick(time.Millisecond)
	}

	snap := m.Snapshot()
	if snap.MaxTickLatency != time.Millisecond {
		t.Errorf("MaxTickLatency = %v, want 1ms after buffer wrap", snap.MaxTickLatency)
	}
	if snap.PeakTickLatency != 50*time.Millisecond {
		t.Errorf("PeakTickLatency = %v, want 50ms", snap.PeakTickLatency)
	}
}

func TestMetricsDisabled(t *testing.T) {
	m := NewMetrics()
	m.SetEnabled(false)
	if m.IsEnabled() {
		t.Fatal("IsEnabled() = true after SetEnabled(false)")
	}

	m.RecordTick(time.Millisecond)
	m.RecordTransition()
	m.RecordPublishError()
	m.RecordReload()

	snap := m.Snapshot()
	if snap.TicksTotal != 0 || snap.TransitionsTotal != 0 || snap.PublishErrors != 0 || snap.ReloadsTotal != 0 {
		t.Errorf("counters advanced while disabled: %+v", snap)
	}
}

func TestMetricsEmptySnapshot(t *testing.T) {
	m := NewMetrics()
	snap := m.Snapshot()
	if snap.AvgTickLatency != 0 || snap.MaxTickLatency != 0 || snap.P99TickLatency != 0 {
		t.Errorf("latency stats = %+v, want zeros", snap)
	}
	if snap.Uptime <= 0 {
		t.Errorf("Uptime = %v, want > 0", snap.Uptime)
	}
}
