// Package watch re-runs a callback whenever a source file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/qxad-lang/qxad/internal/cli"
)

// DefaultDebounce coalesces the burst of events an editor save produces
const DefaultDebounce = 50 * time.Millisecond

// Watcher watches a single file through its parent directory, so that
// editors replacing the file by rename keep being observed.
type Watcher struct {
	w        *fsnotify.Watcher
	path     string
	logger   *cli.Logger
	Debounce time.Duration
}

// New creates a watcher for path
func New(path string, logger *cli.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &Watcher{w: w, path: abs, logger: logger, Debounce: DefaultDebounce}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string { return w.path }

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// Run calls fn once immediately and then after every change to the file,
// until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func(path string)) error {
	fn(w.path)

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
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("watch: %s %s", ev.Op, ev.Name)
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch: %v", err)
		case <-fire:
			fire = nil
			fn(w.path)
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error { return w.w.Close() }
