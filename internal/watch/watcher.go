// Package watch re-runs a property merge whenever one of the files that took
// part in it changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/redhatinsights/propmerge/internal/merge"
	"github.com/redhatinsights/propmerge/internal/properties"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before merging again.
const DefaultDebounce = 200 * time.Millisecond

// MergeFunc produces a merge result. (*merge.Merger).MergeTrace satisfies it.
type MergeFunc func() (properties.Map, *merge.Trace, error)

// Update is delivered after every merge.
type Update struct {
	Properties properties.Map
	Trace      *merge.Trace
	Err        error
}

// Watcher watches the files reported by a merge trace.
type Watcher struct {
	merge    MergeFunc
	notify   func(Update)
	debounce time.Duration
	logger   *slog.Logger

	fsw   *fsnotify.Watcher
	files map[string]bool
	dirs  map[string]bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the settle interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger for the watcher.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New returns a Watcher calling notify with the result of every merge.
func New(mergeFn MergeFunc, notify func(Update), opts ...Option) *Watcher {
	w := &Watcher{
		merge:    mergeFn,
		notify:   notify,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run merges once, then again after every relevant change, until ctx is
// cancelled. notify runs on the calling goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()
	w.fsw = fsw

	w.reload()

	var (
		timer *time.Timer
		fire  <-chan time.Time
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
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("properties file changed", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", "error", err)
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

// reload merges and re-targets the watches. A failed merge still reports the
// files it consulted, so the watcher can pick up a fix.
func (w *Watcher) reload() {
	props, trace, err := w.merge()
	if trace != nil {
		w.track(trace.Files)
	}
	w.notify(Update{Properties: props, Trace: trace, Err: err})
}

// track makes the watched set match files. Parent directories are watched so
// that editors replacing a file by rename are noticed.
func (w *Watcher) track(files []string) {
	w.files = make(map[string]bool, len(files))
	wantDirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		w.files[abs] = true
		wantDirs[filepath.Dir(abs)] = true
	}

	for dir := range w.dirs {
		if !wantDirs[dir] {
			if err := w.fsw.Remove(dir); err != nil {
				w.logger.Debug("failed to stop watching directory", "dir", dir, "error", err)
			}
			delete(w.dirs, dir)
		}
	}
	for dir := range wantDirs {
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			w.logger.Debug("cannot watch directory", "dir", dir, "error", err)
			continue
		}
		w.dirs[dir] = true
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
