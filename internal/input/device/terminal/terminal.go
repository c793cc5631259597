// Package terminal adapts a tcell screen into a per-tick edge source.
//
// Terminals report key presses as instantaneous events with no
// release, so the device gives each key tap semantics: a down edge on
// the tick the event is flushed and an up edge on the next tick. A
// key that keeps arriving (terminal autorepeat) stays held with no
// extra edges until the repeats stop. Mouse button one maps to the
// pointer contact; button three emulates a touch contact at the mouse
// position. Mouse movement feeds an optional hit-test plane.
package terminal

import (
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inputpulse/internal/input/device"
	"github.com/dshills/inputpulse/internal/input/hittest"
	"github.com/dshills/inputpulse/internal/input/key"
	"github.com/dshills/inputpulse/internal/logging"
)

// Option configures a Device.
type Option func(*Device)

// WithPlane routes mouse positions into plane.
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

// WithQuitKeys replaces the keys that close Done.
func WithQuitKeys(keys ...tcell.Key) Option {
	return func(d *Device) { d.quitKeys = keys }
}

// Device converts tcell events into edge state for the sampler.
// The embedded State is the device.Query to sample against.
type Device struct {
	State *device.State

	screen   tcell.Screen
	plane    *hittest.Plane
	logger   *logging.Logger
	quitKeys []tcell.Key

	mu      sync.Mutex
	pending []tcell.Event
	held    map[key.Code]bool
	buttons tcell.ButtonMask

	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  atomic.Bool
}

// New wraps an existing screen. The screen may be nil when events are
// fed directly with Feed.
func New(screen tcell.Screen, opts ...Option) *Device {
	d := &Device{
		State:    device.NewState(),
		screen:   screen,
		logger:   logging.Null,
		quitKeys: []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlC},
		held:     make(map[key.Code]bool),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.WithComponent("terminal")
	return d
}

// NewTerminal allocates a real terminal screen and wraps it.
func NewTerminal(opts ...Option) (*Device, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen, opts...), nil
}

// Init initializes the screen and enables mouse reporting.
func (d *Device) Init() error {
	if err := d.screen.Init(); err != nil {
		return err
	}
	d.screen.EnableMouse()
	return nil
}

// Screen exposes the wrapped screen for rendering.
func (d *Device) Screen() tcell.Screen {
	return d.screen
}

// Start launches the event poll goroutine.
func (d *Device) Start() {
	if !d.started.CompareAndSwap(false, true) {
		return
	}
	d.wg.Add(1)
	go d.poll()
}

// Stop finalizes the screen and waits for the poll goroutine. Safe to
// call more than once.
func (d *Device) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
		if d.screen != nil {
			d.screen.Fini()
		}
	})
	d.wg.Wait()
}

// Done is closed when a quit key arrives.
func (d *Device) Done() <-chan struct{} {
	return d.quit
}

func (d *Device) poll() {
	defer d.wg.Done()
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-d.done:
			return
		default:
		}
		d.Feed(ev)
	}
}

// Feed queues one event for the next Flush.
func (d *Device) Feed(ev tcell.Event) {
	if k, ok := ev.(*tcell.EventKey); ok && d.isQuitKey(k.Key()) {
		d.quitOnce.Do(func() { close(d.quit) })
	}

	d.mu.Lock()
	d.pending = append(d.pending, ev)
	d.mu.Unlock()
}

func (d *Device) isQuitKey(k tcell.Key) bool {
	for _, q := range d.quitKeys {
		if k == q {
			return true
		}
	}
	return false
}

// Flush converts the queued events into this tick's edges. Call once
// per tick, before sampling.
func (d *Device) Flush() {
	d.mu.Lock()
	events := d.pending
	d.pending = nil
	d.mu.Unlock()

	d.State.Reset()

	pressed := make(map[key.Code]bool)
	for _, ev := range events {
		switch e := ev.(type) {
		case *tcell.EventKey:
			if code := convertKey(e); code != key.None {
				pressed[code] = true
			}
		case *tcell.EventMouse:
			d.flushMouse(e)
		case *tcell.EventResize:
			if d.screen != nil {
				d.screen.Sync()
			}
		}
	}

	// A held key that stopped repeating releases this tick.
	for code := range d.held {
		if !pressed[code] {
			d.State.Release(code)
			delete(d.held, code)
		}
	}
	for code := range pressed {
		d.State.Press(code)
		d.held[code] = true
	}
}

func (d *Device) flushMouse(e *tcell.EventMouse) {
	x, y := e.Position()
	pos := device.Position{X: float64(x), Y: float64(y)}
	if d.plane != nil {
		d.plane.SetPointer(pos)
	}

	buttons := e.Buttons()
	diff := buttons ^ d.buttons
	d.buttons = buttons

	if diff&tcell.Button1 != 0 {
		if buttons&tcell.Button1 != 0 {
			d.State.PressPointer()
		} else {
			d.State.ReleasePointer()
		}
	}
	if diff&tcell.Button3 != 0 {
		if buttons&tcell.Button3 != 0 {
			d.State.BeginTouch(pos)
		} else {
			d.State.EndTouch()
		}
	}
}

// convertKey maps a tcell key event onto a key code. Control chords
// land on their letter; the terminal cannot distinguish them from the
// plain key reliably across emulators.
func convertKey(e *tcell.EventKey) key.Code {
	k := e.Key()
	switch k {
	case tcell.KeyRune:
		return runeCode(e.Rune())
	case tcell.KeyEscape:
		return key.Escape
	case tcell.KeyEnter:
		return key.Enter
	case tcell.KeyTab:
		return key.Tab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Backspace
	case tcell.KeyDelete:
		return key.Delete
	case tcell.KeyInsert:
		return key.Insert
	case tcell.KeyHome:
		return key.Home
	case tcell.KeyEnd:
		return key.End
	case tcell.KeyPgUp:
		return key.PageUp
	case tcell.KeyPgDn:
		return key.PageDown
	case tcell.KeyUp:
		return key.Up
	case tcell.KeyDown:
		return key.Down
	case tcell.KeyLeft:
		return key.Left
	case tcell.KeyRight:
		return key.Right
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.F1 + key.Code(k-tcell.KeyF1)
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.A + key.Code(k-tcell.KeyCtrlA)
	}
	return key.None
}

func runeCode(r rune) key.Code {
	switch {
	case r == ' ':
		return key.Space
	case r >= 'a' && r <= 'z':
		return key.A + key.Code(r-'a')
	case r >= 'A' && r <= 'Z':
		return key.A + key.Code(r-'A')
	case r >= '0' && r <= '9':
		return key.Digit0 + key.Code(r-'0')
	}
	return key.None
}
