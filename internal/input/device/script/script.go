// Package script drives edge state from a Lua script.
//
// The script defines a global function tick(n) that returns a table
// of edges for that tick, or nil for a quiet tick:
//
//	function tick(n)
//	    if n == 0 then
//	        return { keydown = {"space"}, pointer = {x = 5, y = 5} }
//	    elseif n == 2 then
//	        return { keyup = {"space"} }
//	    elseif n == 4 then
//	        return { touchbegin = {x = 10, y = 4} }
//	    elseif n == 6 then
//	        return { touchend = true, done = true }
//	    end
//	end
//
// Recognized fields: keydown and keyup (key name or list of key
// names, same vocabulary as profiles), pointerdown, pointerup,
// pointer = {x, y}, touchbegin = {x, y}, touchend, and done, which
// marks the script finished. The state runs with only the base,
// table, string, and math libraries open; io, os, debug, and package
// stay closed. Calls into tick are not preempted: a script that loops
// forever blocks Flush.
package script

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inputpulse/internal/input/device"
	"github.com/dshills/inputpulse/internal/input/hittest"
	"github.com/dshills/inputpulse/internal/input/key"
	"github.com/dshills/inputpulse/internal/logging"
)

var (
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("script: device closed")

	// ErrNoTickFunc is returned when a loaded script does not define
	// a tick function.
	ErrNoTickFunc = errors.New("script: script must define tick(n)")
)

// Option configures a Device.
type Option func(*Device)

// WithPlane routes script pointer positions into plane.
func WithPlane(plane *hittest.Plane) Option {
	return func(d *Device) { d.plane = plane }
}

// WithLogger sets the device logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Device) {
		if l != nil {
			d.logger = l
		}
	}
}

// Device converts a Lua script's tick output into edge state.
// The embedded State is the device.Query to sample against.
type Device struct {
	State *device.State

	plane  *hittest.Plane
	logger *logging.Logger

	mu     sync.Mutex
	l      *lua.LState
	closed bool
	done   bool
}

// New creates a script device with a sandboxed Lua state.
func New(opts ...Option) *Device {
	d := &Device{
		State:  device.NewState(),
		logger: logging.Null,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.WithComponent("script")

	l := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(l)
	logger := d.logger
	l.SetGlobal("log", l.NewFunction(func(l *lua.LState) int {
		logger.Info("script: %s", l.CheckString(1))
		return 0
	}))
	d.l = l
	return d
}

// openSafeLibraries opens only safe Lua standard libraries. io, os,
// debug, and package stay closed.
func openSafeLibraries(l *lua.LState) {
	lua.OpenBase(l)
	lua.OpenTable(l)
	lua.OpenString(l)
	lua.OpenMath(l)
}

// Load executes the script file and verifies it defines tick(n).
func (d *Device) Load(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if err := d.l.DoFile(path); err != nil {
		return fmt.Errorf("script: load %s: %w", path, err)
	}
	return d.requireTick()
}

// LoadString executes inline script source and verifies it defines
// tick(n).
func (d *Device) LoadString(code string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if err := d.l.DoString(code); err != nil {
		return fmt.Errorf("script: load: %w", err)
	}
	return d.requireTick()
}

func (d *Device) requireTick() error {
	fn := d.l.GetGlobal("tick")
	if fn == lua.LNil {
		return ErrNoTickFunc
	}
	if fn.Type() != lua.LTFunction {
		return fmt.Errorf("script: tick is %s, want function", fn.Type())
	}
	return nil
}

// Done reports whether the script marked itself finished.
func (d *Device) Done() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// Close releases the Lua state.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.l.Close()
}

// Flush resets the edge state and applies the script's output for
// tick n. A script error leaves the state quiet for the tick; the
// error is logged and returned.
func (d *Device) Flush(n int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}

	d.State.Reset()

	err := d.callTick(n)
	if err != nil {
		d.logger.Warn("tick %d failed: %v", n, err)
	}
	return err
}

func (d *Device) callTick(n int64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script: lua panic: %v", r)
		}
	}()

	fn := d.l.GetGlobal("tick")
	if fn.Type() != lua.LTFunction {
		return ErrNoTickFunc
	}

	d.l.Push(fn)
	d.l.Push(lua.LNumber(n))
	if err := d.l.PCall(1, 1, nil); err != nil {
		return fmt.Errorf("script: tick(%d): %w", n, err)
	}

	ret := d.l.Get(-1)
	d.l.Pop(1)
	if ret == lua.LNil {
		return nil
	}
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return fmt.Errorf("script: tick(%d) returned %s, want table or nil", n, ret.Type())
	}
	return d.apply(tbl)
}

func (d *Device) apply(tbl *lua.LTable) error {
	var errs []error

	for _, name := range keyNames(tbl.RawGetString("keydown")) {
		code, err := key.FromName(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("keydown: %w", err))
			continue
		}
		d.State.Press(code)
	}
	for _, name := range keyNames(tbl.RawGetString("keyup")) {
		code, err := key.FromName(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("keyup: %w", err))
			continue
		}
		d.State.Release(code)
	}

	if pos, ok := position(tbl.RawGetString("pointer")); ok {
		if d.plane != nil {
			d.plane.SetPointer(pos)
		}
	}
	if truthy(tbl.RawGetString("pointerdown")) {
		d.State.PressPointer()
	}
	if truthy(tbl.RawGetString("pointerup")) {
		d.State.ReleasePointer()
	}

	if pos, ok := position(tbl.RawGetString("touchbegin")); ok {
		d.State.BeginTouch(pos)
	}
	if truthy(tbl.RawGetString("touchend")) {
		d.State.EndTouch()
	}

	if truthy(tbl.RawGetString("done")) {
		d.done = true
	}

	return errors.Join(errs...)
}

// keyNames accepts a single name or an array of names.
func keyNames(v lua.LValue) []string {
	switch val := v.(type) {
	case lua.LString:
		return []string{string(val)}
	case *lua.LTable:
		names := make([]string, 0, val.Len())
		for i := 1; i <= val.Len(); i++ {
			if s, ok := val.RawGetInt(i).(lua.LString); ok {
				names = append(names, string(s))
			}
		}
		return names
	default:
		return nil
	}
}

func position(v lua.LValue) (device.Position, bool) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return device.Position{}, false
	}
	x := lua.LVAsNumber(tbl.RawGetString("x"))
	y := lua.LVAsNumber(tbl.RawGetString("y"))
	return device.Position{X: float64(x), Y: float64(y)}, true
}

func truthy(v lua.LValue) bool {
	return lua.LVAsBool(v)
}
