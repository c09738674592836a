package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudwisedk/docuprocess/internal/adapters/mcp"
	"github.com/cloudwisedk/docuprocess/internal/bootstrap"
	"github.com/cloudwisedk/docuprocess/internal/config"
)

const (
	service = "mcp"
	version = "1.0.0"
)

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

	srv := mcp.NewServer(version, app.IngestUC, app.ApproveUC, app.ReadUC, cfg.WatchFolder)
	app.Logger.Info("mcp_server_started", "transport", "stdio")

	if err := srv.ServeStdio(); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}
