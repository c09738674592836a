package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudwisedk/docuprocess/internal/config"
	"github.com/cloudwisedk/docuprocess/internal/infrastructure/corpusload"
	"github.com/cloudwisedk/docuprocess/internal/infrastructure/repository/postgres"
	"github.com/cloudwisedk/docuprocess/internal/observability/logging"
)

const service = "seed"

func main() {
	cfg := config.Load()
	workbook := flag.String("workbook", cfg.ReferenceWorkbook, "path to the reference data workbook")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewJSONLogger(service, cfg.LogLevel)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	defer db.Close()

	if err := postgres.NewDocumentRepository(db).EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	loader := corpusload.NewLoader(postgres.NewReferenceRepository(db), logger)
	summary, err := loader.LoadWorkbook(ctx, *workbook)
	if err != nil {
		log.Fatalf("load workbook: %v", err)
	}

	logger.Info("seed_done",
		"workbook", *workbook,
		"customers", summary.Customers,
		"policies", summary.Policies,
		"invoices", summary.Invoices,
		"transactions", summary.Transactions,
	)
}
