package watcher

import "context"

// Watcher monitors the recordings root for new meeting directories.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly detected meeting directory.
type EventHandler func(ctx context.Context, dir string) error
