package journal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "state", "journal.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndLastSuccess(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, ok, err := store.LastSuccess(ctx, "finalize", "a.webvtt"); err != nil || ok {
		t.Fatalf("LastSuccess() on empty journal = %v, %v", ok, err)
	}

	entries := []Entry{
		{RunID: "r1", Action: "finalize", Source: "a.webvtt", Checksum: "111", Cues: 3, Status: StatusOK},
		{RunID: "r2", Action: "finalize", Source: "a.webvtt", Checksum: "222", Status: StatusFailed, Error: "boom"},
		{RunID: "r3", Action: "prepare", Source: "a.webvtt", Checksum: "333", Status: StatusOK},
	}
	for _, e := range entries {
		if err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, ok, err := store.LastSuccess(ctx, "finalize", "a.webvtt")
	if err != nil || !ok {
		t.Fatalf("LastSuccess() = %v, %v", ok, err)
	}
	if got.Checksum != "111" || got.RunID != "r1" || got.Cues != 3 {
		t.Errorf("LastSuccess() = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	for _, run := range []string{"r1", "r2", "r3"} {
		if err := store.Record(ctx, Entry{RunID: run, Action: "prepare", Source: run, Status: StatusOK}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 || got[0].RunID != "r3" || got[1].RunID != "r2" {
		t.Errorf("Recent() = %+v", got)
	}
}

func TestChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Checksum(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("Checksum() = %v, want %v", got, want)
	}
}

func TestRetryOnBusy(t *testing.T) {
	calls := 0
	err := retryOnBusy(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("retryOnBusy() = %v after %d calls", err, calls)
	}

	calls = 0
	err = retryOnBusy(context.Background(), func() error {
		calls++
		return errors.New("syntax error")
	})
	if err == nil || calls != 1 {
		t.Errorf("retryOnBusy() should not retry other errors, calls = %d", calls)
	}
}

func TestLock(t *testing.T) {
	dir := t.TempDir()
	release, err := Lock(dir)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	if _, err := Lock(dir); !errors.Is(err, ErrLocked) {
		t.Errorf("second Lock() error = %v, want ErrLocked", err)
	}

	if err := release(); err != nil {
		t.Fatalf("release() error = %v", err)
	}
	release, err = Lock(dir)
	if err != nil {
		t.Fatalf("Lock() after release error = %v", err)
	}
	release()
}
