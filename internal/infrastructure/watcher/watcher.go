// Package watcher feeds files dropped into the intake folder to the
// ingestion use case.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/cloudwisedk/docuprocess/internal/core/ports"
	"github.com/cloudwisedk/docuprocess/internal/core/usecase"
)

type Watcher struct {
	dir      string
	ingestor ports.DocumentIngestor
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// New builds a watcher for dir. ratePerSec caps how fast a bulk drop of
// files is pushed into the pipeline.
func New(dir string, ingestor ports.DocumentIngestor, ratePerSec float64, burst int, logger *slog.Logger) *Watcher {
	if ratePerSec <= 0 {
		ratePerSec = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &Watcher{
		dir:      dir,
		ingestor: ingestor,
		limiter:  rate.NewLimiter(rate.Limit(ratePerSec), burst),
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled. Files already present in the folder
// are swept first so documents dropped while the watcher was down are not
// lost.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	if err := w.sweep(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.observe(ctx, event.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher_error", "error", err)
		}
	}
}

func (w *Watcher) sweep(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("sweep %s: %w", w.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.observe(ctx, filepath.Join(w.dir, entry.Name()))
	}
	return nil
}

func (w *Watcher) observe(ctx context.Context, path string) {
	if !usecase.SupportedFile(path) {
		w.logger.Debug("watcher_skip_file", "path", path)
		return
	}
	if err := w.limiter.Wait(ctx); err != nil {
		return
	}
	if err := w.ingestor.ObserveFile(ctx, path); err != nil {
		w.logger.Error("ingest_file_failed", "path", path, "error", err)
		return
	}
	w.logger.Info("file_observed", "path", path)
}
