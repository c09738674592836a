package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwisedk/docuprocess/internal/config"
	"github.com/cloudwisedk/docuprocess/internal/core/ports"
	"github.com/cloudwisedk/docuprocess/internal/core/scoring"
	"github.com/cloudwisedk/docuprocess/internal/core/usecase"
	"github.com/cloudwisedk/docuprocess/internal/infrastructure/extractor/docfile"
	"github.com/cloudwisedk/docuprocess/internal/infrastructure/ocr"
	"github.com/cloudwisedk/docuprocess/internal/infrastructure/queue/nats"
	"github.com/cloudwisedk/docuprocess/internal/infrastructure/repository/postgres"
	"github.com/cloudwisedk/docuprocess/internal/infrastructure/resilience"
	"github.com/cloudwisedk/docuprocess/internal/infrastructure/rpa"
	"github.com/cloudwisedk/docuprocess/internal/observability/logging"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue   *nats.Queue
	Repo    ports.DocumentRepository
	Results ports.ResultRepository
	Refs    *postgres.ReferenceRepository

	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	ApproveUC ports.DocumentApprover
	NotifyUC  ports.EmailNotifier
	ReadUC    ports.DocumentReader

	closeFn func()
}

func New(ctx context.Context, service string, cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger(service, cfg.LogLevel)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	results := postgres.NewResultRepository(db)
	refs := postgres.NewReferenceRepository(db)

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubjectPrefix, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init task queue: %w", err)
	}

	ocrClient := ocr.New(cfg.OCRURL, executor)
	extractor := docfile.NewExtractor(ocrClient)
	mailer := rpa.NewMailer(cfg.RPAURL, executor)

	engine := scoring.NewEngine(scoring.Weights{
		Customer:       cfg.ScoreWeightCustomer,
		Policy:         cfg.ScoreWeightPolicy,
		Reconciliation: cfg.ScoreWeightReconciliation,
		Quality:        cfg.ScoreWeightQuality,
	}, scoring.ReviewFloors{
		Overall:  cfg.ReviewFloorOverall,
		Customer: cfg.ReviewFloorCustomer,
		Policy:   cfg.ReviewFloorPolicy,
		Quality:  cfg.ReviewFloorQuality,
	})

	analyzeUC := usecase.NewAnalyzeDocumentUseCase(refs, engine)
	ingestUC := usecase.NewIngestDocumentUseCase(repo, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, results, extractor, analyzeUC, queue, usecase.RouteThresholds{
		AutoApprove: cfg.RouteAutoApprove,
		QuickReview: cfg.RouteQuickReview,
	})
	approveUC := usecase.NewApproveDocumentUseCase(repo, queue)
	notifyUC := usecase.NewNotifyUseCase(repo, results, queue, mailer, cfg.EmailRecipient)
	readUC := usecase.NewReadDocumentsUseCase(repo, results)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:   queue,
		Repo:    repo,
		Results: results,
		Refs:    refs,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		ApproveUC: approveUC,
		NotifyUC:  notifyUC,
		ReadUC:    readUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
