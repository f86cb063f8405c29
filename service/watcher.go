package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is the default quiet period a watcher waits for after a
// change before it notifies its listeners.
const DefaultDebounce = 100 * time.Millisecond

// WatcherConfig defines configurations for the corpus watcher.
type WatcherConfig struct {
	// Dir is the corpus directory to watch.
	Dir string

	// IsPage reports whether a file name refers to a corpus document.
	// Changes to other files are ignored. If not specified, every file is
	// considered a document.
	IsPage func(name string) bool

	// Debounce is the period during which subsequent changes get coalesced
	// into a single notification. If not specified, DefaultDebounce is used.
	Debounce time.Duration

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *WatcherConfig) validate() error {
	var err error

	if cfg.Dir == "" {
		err = multierror.Append(err, fmt.Errorf("corpus directory not provided"))
	}

	if cfg.IsPage == nil {
		cfg.IsPage = func(string) bool { return true }
	}

	switch {
	case cfg.Debounce < 0:
		err = multierror.Append(err, fmt.Errorf("invalid value for debounce, must be >= 0"))
	case cfg.Debounce == 0:
		cfg.Debounce = DefaultDebounce
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

// CorpusWatcher monitors a corpus directory and emits a notification on its
// Changes channel whenever documents get added, modified or removed. It
// satisfies the Service interface.
type CorpusWatcher struct {
	cfg     WatcherConfig
	watcher *fsnotify.Watcher

	// Notifications are coalesced: while one is pending, further changes
	// do not queue up.
	changes chan struct{}
}

// NewCorpusWatcher creates a watcher for the configured directory. Events
// that happen after NewCorpusWatcher returns are delivered once Run is
// invoked.
func NewCorpusWatcher(cfg WatcherConfig) (*CorpusWatcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("corpus watcher: config validation failed: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("corpus watcher: %w", err)
	}

	if err := fw.Add(cfg.Dir); err != nil {
		_ = fw.Close()

		return nil, fmt.Errorf("corpus watcher: watch %q: %w", cfg.Dir, err)
	}

	return &CorpusWatcher{
		cfg:     cfg,
		watcher: fw,
		changes: make(chan struct{}, 1),
	}, nil
}

// Name returns the name of the service.
func (w *CorpusWatcher) Name() string { return "corpus-watcher" }

// Changes returns the channel on which change notifications are delivered.
func (w *CorpusWatcher) Changes() <-chan struct{} { return w.changes }

// Run watches the corpus directory until the context gets cancelled. The
// underlying file system watcher is released when Run returns.
func (w *CorpusWatcher) Run(ctx context.Context) error {
	w.cfg.Logger.WithFields(logrus.Fields{
		"dir":      w.cfg.Dir,
		"debounce": w.cfg.Debounce.String(),
	}).Info("started service")
	defer w.cfg.Logger.Info("stopped service")
	defer func() { _ = w.watcher.Close() }()

	// Nil until a relevant change arrives.
	var debounceC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			w.cfg.Logger.WithFields(logrus.Fields{
				"file": event.Name,
				"op":   event.Op.String(),
			}).Debug("detected corpus change")

			if debounceC == nil {
				debounceC = w.cfg.Clock.After(w.cfg.Debounce)
			}
		case <-debounceC:
			debounceC = nil
			w.notify()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			// Watch errors are not fatal.
			w.cfg.Logger.WithField("err", err).Warn("corpus watch error")
		}
	}
}

func (w *CorpusWatcher) relevant(event fsnotify.Event) bool {
	if !w.cfg.IsPage(filepath.Base(event.Name)) {
		return false
	}

	return event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

func (w *CorpusWatcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
