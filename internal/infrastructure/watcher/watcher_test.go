package watcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type ingestorFake struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (f *ingestorFake) ObserveFile(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.paths = append(f.paths, path)
	return nil
}

func (f *ingestorFake) observed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunSweepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "old.pdf")
	if err := os.WriteFile(existing, []byte("pdf"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ingestor := &ingestorFake{}
	w := New(dir, ingestor, 100, 10, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := w.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v", err)
	}

	observed := ingestor.observed()
	if len(observed) != 1 || observed[0] != existing {
		t.Fatalf("expected sweep of %s only, got %v", existing, observed)
	}
}

func TestRunPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	ingestor := &ingestorFake{}
	w := New(dir, ingestor, 100, 10, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register before dropping the file
	time.Sleep(100 * time.Millisecond)
	dropped := filepath.Join(dir, "incoming.eml")
	if err := os.WriteFile(dropped, []byte("Subject: hi\r\n\r\nbody"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		observed := ingestor.observed()
		if len(observed) == 1 && observed[0] == dropped {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("watcher never observed %s, got %v", dropped, ingestor.observed())
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v", err)
	}
}
