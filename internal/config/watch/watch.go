// Package watch reloads an activation profile when its file changes.
//
// The watcher monitors the profile's directory rather than the file
// itself, so editors that write-then-rename still trigger a reload.
// Rapid bursts of events collapse into one reload after a debounce
// window. A reload that fails to parse is reported on Errors and the
// previously delivered profile stays in effect; the watcher never
// pushes a broken profile.
package watch

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/inputpulse/internal/config"
	"github.com/dshills/inputpulse/internal/logging"
)

// ErrUnsupportedFormat is returned for profile paths whose extension
// selects no parser.
var ErrUnsupportedFormat = config.ErrUnsupportedFormat

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period after the last file event before
// the profile is re-read.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher delivers re-parsed profiles as the file changes on disk.
type Watcher struct {
	path     string
	dir      string
	base     string
	load     func(string) (*config.Profile, error)
	debounce time.Duration
	logger   *logging.Logger

	fsw      *fsnotify.Watcher
	profiles chan *config.Profile
	errs     chan error
	done     chan struct{}
	wg       sync.WaitGroup
	closed   atomic.Bool
}

// New starts watching path. The parser is chosen by file extension.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	load, err := config.LoaderFor(abs)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		base:     filepath.Base(abs),
		load:     load,
		debounce: 50 * time.Millisecond,
		logger:   logging.Null,
		profiles: make(chan *config.Profile, 1),
		errs:     make(chan error, 8),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("config.watch")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Profiles delivers each successfully re-parsed profile. Only the
// latest profile is retained if the consumer lags.
func (w *Watcher) Profiles() <-chan *config.Profile {
	return w.profiles
}

// Errors delivers reload and watch failures. The channel is bounded;
// errors beyond its capacity are dropped (they are also logged).
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(evt.Name) != w.base {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("profile event: %s", evt)
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			pending = timer.C

		case <-pending:
			timer = nil
			pending = nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) reload() {
	profile, err := w.load(w.path)
	if err != nil {
		w.logger.Warn("profile reload failed: %v", err)
		w.report(err)
		return
	}
	w.logger.Info("profile reloaded: %d channels", len(profile.Channels))

	for {
		select {
		case w.profiles <- profile:
			return
		default:
			// Displace the stale profile the consumer never took.
			select {
			case <-w.profiles:
			default:
			}
		}
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
