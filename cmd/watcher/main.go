package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudwisedk/docuprocess/internal/bootstrap"
	"github.com/cloudwisedk/docuprocess/internal/config"
	"github.com/cloudwisedk/docuprocess/internal/infrastructure/watcher"
)

const service = "watcher"

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, service, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	if err := os.MkdirAll(cfg.WatchFolder, 0o755); err != nil {
		log.Fatalf("create watch folder: %v", err)
	}

	w := watcher.New(cfg.WatchFolder, app.IngestUC, cfg.WatchRatePerSec, cfg.WatchBurst, app.Logger)
	app.Logger.Info("watcher_started", "folder", cfg.WatchFolder)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("watcher error: %v", err)
	}
}
