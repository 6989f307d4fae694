package watcher

import (
	"context"
	"time"
)

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles file events
type EventHandler func(ctx context.Context, filePath string) error

// Options tunes a Watcher
type Options struct {
	// Match selects the files whose changes reach the handler
	Match func(path string) bool
	// Settle is how long a file must stay quiet before it is handled
	Settle        time.Duration
	MaxConcurrent int
}
