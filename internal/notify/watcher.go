package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ganot/dashview/internal/mirror"
)

// DefaultDebounce coalesces the burst of filesystem events a single mirror
// rewrite produces.
const DefaultDebounce = 100 * time.Millisecond

// ErrAlreadyStarted is returned when Start is called twice.
var ErrAlreadyStarted = errors.New("watcher already started")

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the per-key debounce duration.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the watcher's logger.
func WithLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = logger }
}

// Watcher observes a FileStore directory and publishes the change topic of
// any mirror key rewritten on disk. It is the cross-process counterpart of
// the in-process bus: the process that performs a mutation hears about it
// through its own Publish call, every other process through the filesystem.
type Watcher struct {
	dir      string
	bus      Bus
	topics   map[string]string
	debounce time.Duration
	logger   *slog.Logger

	fw      *fsnotify.Watcher
	mu      sync.Mutex
	timers  map[string]*time.Timer
	started bool
}

// NewWatcher creates a watcher over dir. topics maps mirror keys to the
// bus topics to publish; keys absent from the map are ignored.
func NewWatcher(dir string, bus Bus, topics map[string]string, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dir:      dir,
		bus:      bus,
		topics:   topics,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
		timers:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching and returns immediately; events are handled on a
// background goroutine until the context is canceled or Close is called.
// Failure to establish the watch is returned so the caller can degrade to
// in-process notifications only.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrAlreadyStarted
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return err
	}
	w.fw = fw
	w.started = true

	go w.run(ctx)
	return nil
}

// Close stops the watcher and releases its filesystem resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return nil
	}
	w.started = false
	for _, t := range w.timers {
		t.Stop()
	}
	return w.fw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			key, ok := mirror.KeyForPath(event.Name)
			if !ok {
				continue
			}
			topic, ok := w.topics[key]
			if !ok {
				continue
			}
			w.schedule(key, topic)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("mirror watch error", "dir", w.dir, "error", err)
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a key.
func (w *Watcher) schedule(key, topic string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	if t, ok := w.timers[key]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[key] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, key)
		w.mu.Unlock()
		w.bus.Publish(topic)
	})
}
