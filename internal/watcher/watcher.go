package watcher

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"meeting-scribe/internal/logger"
)

type implWatcher struct {
	rootDir string
	settle  time.Duration
	handler EventHandler
	logger  logger.Logger
	watcher *fsnotify.Watcher
	slot    chan struct{}
	wg      sync.WaitGroup

	mu   sync.Mutex
	seen map[string]bool
}

// Start blocks, dispatching newly created meeting directories to the
// handler until the context is cancelled. In-flight runs are allowed to
// finish before Start returns.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for new meeting directories", w.rootDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight runs to finish...")
			w.wg.Wait()
			w.logger.Info(ctx, "Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil || !info.IsDir() {
				w.logger.Debug(ctx, "Ignoring non-directory entry: %s", event.Name)
				continue
			}
			if !w.markSeen(event.Name) {
				continue
			}

			w.logger.Info(ctx, "New meeting directory detected: %s", event.Name)
			w.wg.Add(1)
			go w.dispatch(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// dispatch waits out the settle period, then runs the handler once the
// single processing slot is free.
func (w *implWatcher) dispatch(ctx context.Context, dir string) {
	defer w.wg.Done()

	select {
	case <-time.After(w.settle):
	case <-ctx.Done():
		return
	}

	select {
	case w.slot <- struct{}{}:
		defer func() { <-w.slot }()
	case <-ctx.Done():
		return
	}

	if err := w.handler(ctx, dir); err != nil {
		w.logger.Error(ctx, "Failed to process %s: %v", dir, err)
	}
}

func (w *implWatcher) markSeen(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen == nil {
		w.seen = make(map[string]bool)
	}
	if w.seen[dir] {
		return false
	}
	w.seen[dir] = true
	return true
}
