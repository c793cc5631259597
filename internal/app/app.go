package app

import (
	"context"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/inputpulse/internal/config"
	"github.com/dshills/inputpulse/internal/config/watch"
	"github.com/dshills/inputpulse/internal/event"
	"github.com/dshills/inputpulse/internal/input"
	"github.com/dshills/inputpulse/internal/input/axis"
	"github.com/dshills/inputpulse/internal/input/device"
	"github.com/dshills/inputpulse/internal/input/device/script"
	"github.com/dshills/inputpulse/internal/input/device/terminal"
	"github.com/dshills/inputpulse/internal/input/hittest"
	"github.com/dshills/inputpulse/internal/input/key"
	"github.com/dshills/inputpulse/internal/logging"
	"github.com/dshills/inputpulse/internal/tick"
)

// Application coordinates the probe's components: one device, the
// channel manager, the tick driver, and (in terminal mode) the HUD.
type Application struct {
	opts    Options
	logger  *logging.Logger
	logFile *os.File

	bus     *event.Bus
	plane   *hittest.Plane
	manager *input.Manager
	driver  *tick.Driver

	term    *terminal.Device
	script  *script.Device
	watcher *watch.Watcher
	hud     *hud

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// New creates an application with the given options. Components are
// initialized in dependency order; the first failure aborts.
func New(opts Options) (*Application, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		app.release()
		return nil, err
	}
	return app, nil
}

// Manager exposes the channel manager for inspection.
func (app *Application) Manager() *input.Manager {
	return app.manager
}

// Run drives sampling until the context is cancelled, a quit key
// arrives, or a script device finishes.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.term != nil {
		if err := app.term.Init(); err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
		app.term.Start()
		defer app.term.Stop()
		app.hud = newHUD(app.term.Screen())
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-runCtx.Done():
		case <-app.done:
		case <-app.quitSignal():
		}
		cancel()
	}()

	app.logger.Info("probe running: profile=%s rate=%d script=%q",
		app.opts.ProfilePath, app.opts.Rate, app.opts.ScriptPath)
	return app.driver.Run(runCtx)
}

// Quit asks a running application to stop.
func (app *Application) Quit() {
	app.doneOnce.Do(func() { close(app.done) })
}

// Shutdown stops the application and releases its resources.
func (app *Application) Shutdown() {
	app.Quit()
	app.release()
}

func (app *Application) quitSignal() <-chan struct{} {
	if app.term != nil {
		return app.term.Done()
	}
	return nil
}

func (app *Application) release() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
	if app.script != nil {
		app.script.Close()
		app.script = nil
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	if err := app.bootstrapLogging(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}

	app.bus = event.NewBus()

	profile, err := config.Load(app.opts.ProfilePath)
	if err != nil {
		return &InitError{Component: "profile", Err: err}
	}

	app.plane = hittest.NewPlane()
	state, err := app.bootstrapDevice()
	if err != nil {
		return err
	}

	deps := input.Deps{
		Device:    state,
		HitTester: app.plane,
		Axes:      builtinAxes(state),
		Clock:     time.Now,
		Logger:    app.logger,
		Bus:       app.bus,
	}
	app.manager, err = input.New(profile, deps)
	if err != nil {
		return &InitError{Component: "channels", Err: err}
	}
	app.layoutTriggers(profile)

	if app.opts.Watch {
		w, err := watch.New(app.opts.ProfilePath, watch.WithLogger(app.logger))
		if err != nil {
			return &InitError{Component: "profile watcher", Err: err}
		}
		app.watcher = w
	}

	app.driver, err = tick.New(app.step, tick.Config{
		Interval: time.Second / time.Duration(app.opts.Rate),
		Logger:   app.logger,
	})
	if err != nil {
		return &InitError{Component: "tick driver", Err: err}
	}
	return nil
}

func (app *Application) bootstrapLogging() error {
	cfg := logging.DefaultConfig()
	cfg.Level = app.opts.level()

	switch {
	case app.opts.LogPath != "":
		f, err := os.OpenFile(app.opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		app.logFile = f
		cfg.Output = f
	case app.opts.ScriptPath == "":
		// Terminal mode without a log file: stderr would corrupt the
		// display.
		app.logger = logging.Null
		return nil
	}

	app.logger = logging.New(cfg).WithComponent("app")
	return nil
}

func (app *Application) bootstrapDevice() (*device.State, error) {
	if app.opts.ScriptPath != "" {
		app.script = script.New(script.WithPlane(app.plane), script.WithLogger(app.logger))
		if err := app.script.Load(app.opts.ScriptPath); err != nil {
			return nil, &InitError{Component: "script device", Err: err}
		}
		return app.script.State, nil
	}

	term, err := terminal.NewTerminal(terminal.WithPlane(app.plane), terminal.WithLogger(app.logger))
	if err != nil {
		return nil, &InitError{Component: "terminal device", Err: err}
	}
	app.term = term
	return term.State, nil
}

// builtinAxes exposes held-key pairs as the named axes profiles can
// reference.
func builtinAxes(state *device.State) input.AxisRegistry {
	return input.AxisRegistry{
		"keys-x":   axis.NewButtons(state.Held, key.A, key.D),
		"keys-y":   axis.NewButtons(state.Held, key.S, key.W),
		"arrows-x": axis.NewButtons(state.Held, key.Left, key.Right),
		"arrows-y": axis.NewButtons(state.Held, key.Down, key.Up),
	}
}

// layoutTriggers places one clickable box per distinct trigger name.
func (app *Application) layoutTriggers(profile *config.Profile) {
	seen := map[string]bool{}
	for _, ch := range profile.Channels {
		for _, t := range ch.Triggers {
			seen[t] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	app.plane.Clear()
	x := 2.0
	for _, name := range names {
		app.plane.Add(name, hittest.NewRect(x, 2, triggerBoxWidth, triggerBoxHeight))
		x += triggerBoxWidth + 2
	}
}

// step runs once per tick on the driver goroutine.
func (app *Application) step(n int64) {
	app.pollWatcher()

	if app.script != nil {
		_ = app.script.Flush(n) // failures are logged by the device
		if app.script.Done() {
			app.Quit()
		}
	} else {
		app.term.Flush()
	}

	app.manager.Sample(n)

	if app.hud != nil {
		app.hud.render(n, app.manager, app.plane)
	}
}

func (app *Application) pollWatcher() {
	if app.watcher == nil {
		return
	}
	select {
	case profile := <-app.watcher.Profiles():
		if err := app.manager.Reload(profile); err != nil {
			app.logger.Warn("profile reload rejected: %v", err)
			return
		}
		app.layoutTriggers(profile)
	case err := <-app.watcher.Errors():
		app.logger.Warn("profile watch: %v", err)
	default:
	}
}
