package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"meeting-scribe/internal/logger"
)

// New creates a Watcher over the recordings root. settle is how long a
// new directory must exist before it is handed off, giving recorders
// time to finish writing audio files into it.
func New(rootDir string, settle time.Duration, handler EventHandler, log logger.Logger) (Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsWatcher.Add(rootDir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", rootDir, err)
	}

	if settle <= 0 {
		settle = 5 * time.Second
	}

	return &implWatcher{
		rootDir: rootDir,
		settle:  settle,
		handler: handler,
		logger:  log,
		watcher: fsWatcher,
		// One run at a time: the transcription engine holds the
		// model exclusively.
		slot: make(chan struct{}, 1),
	}, nil
}
