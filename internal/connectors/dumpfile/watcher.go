package dumpfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/knowbase-cli/internal/logger"
)

// debounceDelay batches rapid successive writes to the same dump file
// before handing it off, so a file being written in several flushes is
// ingested once.
const debounceDelay = 200 * time.Millisecond

// Handler is invoked with the path of a dump file that appeared or
// changed in the watched directory.
type Handler func(ctx context.Context, path string)

// Watcher ingests dump files dropped into a directory.
type Watcher struct {
	dir     string
	handler Handler

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher creates a watcher over dir. The handler runs once per
// settled file change.
func NewWatcher(dir string, handler Handler) *Watcher {
	return &Watcher{
		dir:     dir,
		handler: handler,
		timers:  make(map[string]*time.Timer),
	}
}

// Run watches the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	logger.Info("Watching %s for dump files", w.dir)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watcher stopping: %v", ctx.Err())
			w.stopTimers()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isDumpFile(event.Name) {
				continue
			}
			logger.Debug("Dump file change: %s (%s)", event.Name, event.Op)
			w.schedule(ctx, event.Name)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		w.handler(ctx, path)
	})
}

// stopTimers cancels all pending debounce timers.
func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

// isDumpFile reports whether the path looks like a JSON dump.
func isDumpFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
