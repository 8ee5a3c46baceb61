// Package watch drives continuous rebuilds. It watches the source tree
// with fsnotify, filters events through ignore globs, and rate-limits how
// often a burst of file events may trigger a rebuild.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/capsulejs/capsule/internal/logging"
)

// Config defines watcher configuration.
type Config struct {
	// Root is the directory whose tree is watched.
	Root string
	// Ignore holds doublestar globs, matched against slash-separated
	// paths relative to Root.
	Ignore []string
	// RebuildsPerSecond caps rebuild frequency. Events arriving faster
	// are dropped; the next allowed event picks up all changes anyway
	// since every rebuild starts from the entry point.
	RebuildsPerSecond float64
}

// Watcher owns the fsnotify instance for one watch run.
type Watcher struct {
	fsw     *fsnotify.Watcher
	limiter *rate.Limiter
	root    string
	ignore  []string
	log     *logging.Logger
}

// New creates a watcher over cfg.Root with every non-ignored directory
// registered.
func New(cfg Config, log *logging.Logger) (*Watcher, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	rps := cfg.RebuildsPerSecond
	if rps <= 0 {
		rps = 2
	}

	w := &Watcher{
		fsw:     fsw,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		root:    root,
		ignore:  cfg.Ignore,
		log:     log,
	}

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if w.ignored(p) {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to register watch tree: %w", err)
	}

	return w, nil
}

// Run consumes events until ctx is done, invoking rebuild for each allowed
// change. Rebuilds are serialized: rebuild runs on the event loop
// goroutine, so builds never overlap.
func (w *Watcher) Run(ctx context.Context, rebuild func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Watch error", zap.Error(err))
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) {
				continue
			}

			// New directories need their own watch before anything
			// inside them can be seen.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						w.log.Warn("Failed to watch new directory", zap.Error(err))
					}
				}
			}

			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if !w.limiter.Allow() {
				continue
			}

			w.log.Info("Change detected", zap.String("path", event.Name))
			rebuild()
		}
	}
}

// ignored reports whether p matches any ignore glob.
func (w *Watcher) ignored(p string) bool {
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Close releases the fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
