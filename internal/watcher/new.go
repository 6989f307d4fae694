package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/vttloc/internal/logger"
)

const defaultSettle = 500 * time.Millisecond

// New creates a Watcher over root and every directory below it
func New(root string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if opts.Settle <= 0 {
		opts.Settle = defaultSettle
	}
	if opts.Match == nil {
		opts.Match = func(string) bool { return true }
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}

	w := &implWatcher{
		root:     root,
		handler:  handler,
		logger:   log,
		watcher:  fw,
		opts:     opts,
		sem:      newSemaphore(opts.MaxConcurrent),
		pending:  make(map[string]*time.Timer),
		inflight: make(map[string]bool),
		ready:    make(chan string),
	}
	if err := w.addTree(root, nil); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}
	return w, nil
}
