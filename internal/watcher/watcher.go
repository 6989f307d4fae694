package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/vttloc/internal/logger"
)

type implWatcher struct {
	root    string
	handler EventHandler
	logger  logger.Logger
	watcher *fsnotify.Watcher
	opts    Options
	sem     *semaphore
	wg      sync.WaitGroup

	mu       sync.Mutex
	pending  map[string]*time.Timer
	inflight map[string]bool
	ready    chan string
}

// Start monitors the tree until ctx is cancelled. Each matching file is
// handed to the handler once it has been quiet for the settle period; the
// handler never runs twice at once for the same file.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "watching", "root", w.root, "max_concurrent", w.opts.MaxConcurrent, "settle", w.opts.Settle)

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			w.logger.Info(ctx, "waiting for running handlers")
			w.wg.Wait()
			w.logger.Info(ctx, "watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event)

		case path := <-w.ready:
			if err := w.dispatch(ctx, path); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "watcher error", "error", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// Files can land in a new directory before it is watched
			err := w.addTree(event.Name, func(path string) {
				if w.opts.Match(path) {
					w.schedule(ctx, path)
				}
			})
			if err != nil {
				w.logger.Warn(ctx, "cannot watch new directory", "dir", event.Name, "error", err)
			}
			return
		}
	}

	if !w.opts.Match(event.Name) {
		w.logger.Debug(ctx, "ignoring", "file", event.Name)
		return
	}
	w.schedule(ctx, event.Name)
}

// schedule (re)arms the settle timer for path
func (w *implWatcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.opts.Settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.opts.Settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case w.ready <- path:
		case <-ctx.Done():
		}
	})
}

func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	w.mu.Lock()
	busy := w.inflight[path]
	w.mu.Unlock()
	if busy {
		// Picked up again once the running handler has had time to finish
		w.schedule(ctx, path)
		return nil
	}

	if err := w.sem.acquire(ctx); err != nil {
		return err
	}

	w.mu.Lock()
	w.inflight[path] = true
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.sem.release()
		defer func() {
			w.mu.Lock()
			delete(w.inflight, path)
			w.mu.Unlock()
		}()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "handler failed", "file", path, "error", err)
		}
	}()
	return nil
}

func (w *implWatcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

// addTree watches dir and every directory below it. found, when set, sees
// every regular file already present.
func (w *implWatcher) addTree(dir string, found func(path string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if found != nil && d.Type().IsRegular() {
				found(path)
			}
			return nil
		}
		return w.watcher.Add(path)
	})
}
