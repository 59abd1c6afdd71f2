// Package watch re-runs a callback when config files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"
)

const (
	// DefaultDebounce is how long a burst of events must settle before the
	// callback runs.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultInterval is the minimum time between two callbacks.
	DefaultInterval = time.Second
)

// Watcher watches a set of directories for changes to .json files.
type Watcher struct {
	fw       *fsnotify.Watcher
	logger   hclog.Logger
	limiter  *rate.Limiter
	debounce time.Duration
	dirs     []string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDebounce sets the settle delay.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLimiter replaces the callback rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(w *Watcher) {
		if l != nil {
			w.limiter = l
		}
	}
}

// New starts watching dirs. Duplicates are ignored; a directory that cannot
// be watched is an error.
func New(dirs []string, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		fw:       fw,
		logger:   hclog.NewNullLogger(),
		limiter:  rate.NewLimiter(rate.Every(DefaultInterval), 1),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	seen := make(map[string]bool)
	for _, dir := range dirs {
		dir = filepath.Clean(dir)
		if seen[dir] {
			continue
		}
		seen[dir] = true

		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs = append(w.dirs, dir)
		w.logger.Debug("watching directory", "dir", dir)
	}

	return w, nil
}

// Dirs returns the watched directories.
func (w *Watcher) Dirs() []string {
	return append([]string(nil), w.dirs...)
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// Run calls onChange with the last changed file once events settle, at most
// once per limiter token. Callbacks run on the caller's goroutine, one at a
// time. Run returns nil when ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	var (
		pending string
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Trace("config file event", "path", event.Name, "op", event.Op.String())

			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			w.logger.Debug("config changed", "path", pending)
			onChange(pending)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
