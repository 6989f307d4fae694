package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/vttloc/internal/logger"
)

type callLog struct {
	mu    sync.Mutex
	paths []string
	seen  chan string
}

func newCallLog() *callLog {
	return &callLog{seen: make(chan string, 16)}
}

func (c *callLog) handle(_ context.Context, path string) error {
	c.mu.Lock()
	c.paths = append(c.paths, path)
	c.mu.Unlock()
	c.seen <- path
	return nil
}

func (c *callLog) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.paths)
}

func startWatcher(t *testing.T, root string, calls *callLog) {
	t.Helper()
	w, err := New(root, calls.handle, logger.NewNop(), Options{
		Match:  func(path string) bool { return strings.HasSuffix(path, ".webvtt") },
		Settle: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	t.Cleanup(func() {
		cancel()
		<-done
		w.Stop()
	})
}

func waitFor(t *testing.T, calls *callLog, want string) {
	t.Helper()
	select {
	case got := <-calls.seen:
		if got != want {
			t.Errorf("handler got %v, want %v", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("handler not called for %v", want)
	}
}

func TestWatcherHandlesMatchingFiles(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "show", "prepared")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	calls := newCallLog()
	startWatcher(t, root, calls)

	if err := os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(sub, "ep.webvtt")
	if err := os.WriteFile(target, []byte("one"), 0644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, calls, target)
	if n := calls.count(); n != 1 {
		t.Errorf("handler called %d times, want 1", n)
	}
}

func TestWatcherSettlesBurstOfWrites(t *testing.T) {
	root := t.TempDir()
	calls := newCallLog()
	startWatcher(t, root, calls)

	target := filepath.Join(root, "ep.webvtt")
	f, err := os.Create(target)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		f.WriteString("line\n")
	}
	f.Close()

	waitFor(t, calls, target)
	time.Sleep(300 * time.Millisecond)
	if n := calls.count(); n != 1 {
		t.Errorf("handler called %d times for one burst, want 1", n)
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	calls := newCallLog()
	startWatcher(t, root, calls)

	dir := filepath.Join(root, "season2")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	target := filepath.Join(dir, "ep.webvtt")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, calls, target)
}

func TestSemaphore(t *testing.T) {
	sem := newSemaphore(1)
	if err := sem.acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := sem.acquire(ctx); err == nil {
		t.Error("acquire() on a full semaphore should fail when ctx expires")
	}

	sem.release()
	if err := sem.acquire(context.Background()); err != nil {
		t.Errorf("acquire() after release error = %v", err)
	}
}
