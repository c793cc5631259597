package script

import (
	"errors"
	"testing"

	"github.com/dshills/inputpulse/internal/input/binding"
	"github.com/dshills/inputpulse/internal/input/device"
	"github.com/dshills/inputpulse/internal/input/hittest"
	"github.com/dshills/inputpulse/internal/input/key"
	"github.com/dshills/inputpulse/internal/input/sampler"
)

func TestLoadStringRequiresTickFunction(t *testing.T) {
	tests := []struct {
		name string
		code string
		ok   bool
	}{
		{"tick defined", "function tick(n) end", true},
		{"tick missing", "x = 1", false},
		{"tick not a function", "tick = 5", false},
		{"syntax error", "function tick(", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			defer d.Close()
			err := d.LoadString(tt.code)
			if tt.ok && err != nil {
				t.Errorf("LoadString() error = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("LoadString() error = nil, want failure")
			}
		})
	}
}

func TestTickTableProducesEdges(t *testing.T) {
	d := New()
	defer d.Close()

	code := `
function tick(n)
    if n == 0 then
        return { keydown = {"f", "space"}, pointerdown = true }
    elseif n == 1 then
        return { keyup = "f", pointerup = true }
    end
end
`
	if err := d.LoadString(code); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	if err := d.Flush(0); err != nil {
		t.Fatalf("Flush(0) error = %v", err)
	}
	if !d.State.KeyDownEdge(key.F) || !d.State.KeyDownEdge(key.Space) {
		t.Error("missing key down edges on tick 0")
	}
	if !d.State.PointerPressEdge() {
		t.Error("missing pointer press edge on tick 0")
	}

	if err := d.Flush(1); err != nil {
		t.Fatalf("Flush(1) error = %v", err)
	}
	if d.State.KeyDownEdge(key.F) {
		t.Error("down edge leaked into tick 1")
	}
	if !d.State.KeyUpEdge(key.F) {
		t.Error("missing key up edge on tick 1")
	}
	if !d.State.PointerReleaseEdge() {
		t.Error("missing pointer release edge on tick 1")
	}

	// Quiet tick clears everything.
	if err := d.Flush(2); err != nil {
		t.Fatalf("Flush(2) error = %v", err)
	}
	if d.State.KeyUpEdge(key.F) || d.State.PointerReleaseEdge() {
		t.Error("edges survived a quiet tick")
	}
}

func TestTouchEdges(t *testing.T) {
	d := New()
	defer d.Close()

	code := `
function tick(n)
    if n == 0 then
        return { touchbegin = {x = 10, y = 4} }
    elseif n == 1 then
        return { touchend = true }
    end
end
`
	if err := d.LoadString(code); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	if err := d.Flush(0); err != nil {
		t.Fatalf("Flush(0) error = %v", err)
	}
	pos, ok := d.State.TouchBeginEdge()
	if !ok {
		t.Fatal("missing touch begin edge")
	}
	if pos != (device.Position{X: 10, Y: 4}) {
		t.Errorf("touch position = %v, want (10, 4)", pos)
	}

	if err := d.Flush(1); err != nil {
		t.Fatalf("Flush(1) error = %v", err)
	}
	if !d.State.TouchEndEdge() {
		t.Error("missing touch end edge")
	}
}

func TestPointerFeedsPlane(t *testing.T) {
	plane := hittest.NewPlane()
	d := New(WithPlane(plane))
	defer d.Close()

	code := `
function tick(n)
    return { pointer = {x = 3, y = 9} }
end
`
	if err := d.LoadString(code); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if err := d.Flush(0); err != nil {
		t.Fatalf("Flush(0) error = %v", err)
	}
	if got := plane.Pointer(); got != (device.Position{X: 3, Y: 9}) {
		t.Errorf("Pointer() = %v, want (3, 9)", got)
	}
}

func TestUnknownKeyNameIsError(t *testing.T) {
	d := New()
	defer d.Close()

	code := `
function tick(n)
    return { keydown = {"not-a-key", "f"} }
end
`
	if err := d.LoadString(code); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	err := d.Flush(0)
	if err == nil {
		t.Fatal("Flush() error = nil, want key resolution failure")
	}
	// Known names in the same table still apply.
	if !d.State.KeyDownEdge(key.F) {
		t.Error("valid key in the same table was dropped")
	}
}

func TestNonTableReturnIsError(t *testing.T) {
	d := New()
	defer d.Close()

	if err := d.LoadString("function tick(n) return 42 end"); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if err := d.Flush(0); err == nil {
		t.Error("Flush() error = nil, want type failure")
	}
}

func TestRuntimeErrorLeavesQuietTick(t *testing.T) {
	d := New()
	defer d.Close()

	code := `
function tick(n)
    if n == 0 then
        return { keydown = {"f"} }
    end
    error("boom")
end
`
	if err := d.LoadString(code); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if err := d.Flush(0); err != nil {
		t.Fatalf("Flush(0) error = %v", err)
	}
	if err := d.Flush(1); err == nil {
		t.Fatal("Flush(1) error = nil, want script failure")
	}
	if d.State.KeyDownEdge(key.F) {
		t.Error("edges from the failed tick were not cleared")
	}
}

func TestDoneFlag(t *testing.T) {
	d := New()
	defer d.Close()

	code := `
function tick(n)
    if n == 3 then
        return { done = true }
    end
end
`
	if err := d.LoadString(code); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	for n := int64(0); n < 3; n++ {
		if err := d.Flush(n); err != nil {
			t.Fatalf("Flush(%d) error = %v", n, err)
		}
		if d.Done() {
			t.Fatalf("Done() = true at tick %d", n)
		}
	}
	if err := d.Flush(3); err != nil {
		t.Fatalf("Flush(3) error = %v", err)
	}
	if !d.Done() {
		t.Error("Done() = false after done tick")
	}
}

func TestClosedDevice(t *testing.T) {
	d := New()
	if err := d.LoadString("function tick(n) end"); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	d.Close()
	d.Close()

	if err := d.Flush(0); !errors.Is(err, ErrClosed) {
		t.Errorf("Flush() error = %v, want ErrClosed", err)
	}
	if err := d.LoadString("function tick(n) end"); !errors.Is(err, ErrClosed) {
		t.Errorf("LoadString() error = %v, want ErrClosed", err)
	}
}

func TestScriptDrivesSamplerCycle(t *testing.T) {
	d := New()
	defer d.Close()

	code := `
function tick(n)
    if n == 0 then
        return { keydown = {"space"} }
    elseif n == 2 then
        return { keyup = {"space"} }
    end
end
`
	if err := d.LoadString(code); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	cfg := sampler.DefaultConfig()
	cfg.Binding = binding.New().WithKeys(key.Space)
	cfg.Device = d.State
	s := sampler.New(cfg)

	type step struct {
		active  bool
		started bool
		ended   bool
	}
	want := []step{
		{active: true, started: true},
		{active: true},
		{active: false, ended: true},
		{active: false},
	}

	for n := int64(0); n < int64(len(want)); n++ {
		if err := d.Flush(n); err != nil {
			t.Fatalf("Flush(%d) error = %v", n, err)
		}
		s.Sample(n)

		if got := s.IsActive(); got != want[n].active {
			t.Errorf("tick %d: IsActive() = %v, want %v", n, got, want[n].active)
		}
		if got := s.StartedThisTick(); got != want[n].started {
			t.Errorf("tick %d: StartedThisTick() = %v, want %v", n, got, want[n].started)
		}
		if got := s.EndedThisTick(); got != want[n].ended {
			t.Errorf("tick %d: EndedThisTick() = %v, want %v", n, got, want[n].ended)
		}
	}
}
