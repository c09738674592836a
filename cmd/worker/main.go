package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cloudwisedk/docuprocess/internal/bootstrap"
	"github.com/cloudwisedk/docuprocess/internal/config"
	"github.com/cloudwisedk/docuprocess/internal/observability/metrics"
)

const service = "worker"

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, service, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(service)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Error("metrics_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	instrument := func(stage string, timeout time.Duration, fn func(context.Context, string) error) func(context.Context, string) error {
		return func(handlerCtx context.Context, documentID string) error {
			taskCtx, cancel := context.WithTimeout(handlerCtx, timeout)
			defer cancel()

			workerMetrics.StartTask()
			start := time.Now()
			err := fn(taskCtx, documentID)
			workerMetrics.FinishTask(service, stage, time.Since(start), err)
			if err != nil {
				app.Logger.Error("stage_failed", "stage", stage, "document_id", documentID, "error", err)
				return err
			}
			app.Logger.Info("stage_done", "stage", stage, "document_id", documentID, "duration_ms", time.Since(start).Milliseconds())
			return nil
		}
	}

	processHandler := instrument("process", 5*time.Minute, func(taskCtx context.Context, documentID string) error {
		if doc, err := app.Repo.GetByID(taskCtx, documentID); err == nil {
			workerMetrics.ObserveQueueLag(service, time.Since(doc.CreatedAt))
		}
		routed, err := app.ProcessUC.ProcessByID(taskCtx, documentID)
		if routed != "" {
			// Routes commit before the notification enqueue, so count
			// them even when the handler still returns an error.
			workerMetrics.RecordRoute(service, string(routed))
		}
		return err
	})
	prepareHandler := instrument("email_prepare", 1*time.Minute, app.NotifyUC.PrepareEmail)
	sendHandler := instrument("email_send", 2*time.Minute, app.NotifyUC.SendEmail)

	app.Logger.Info("worker_started", "subject_prefix", cfg.NATSSubjectPrefix)

	var wg sync.WaitGroup
	subscribe := func(name string, run func(context.Context, func(context.Context, string) error) error, handler func(context.Context, string) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx, handler); err != nil && ctx.Err() == nil {
				app.Logger.Error("subscription_failed", "subject", name, "error", err)
				stop()
			}
		}()
	}

	subscribe("process", app.Queue.SubscribeProcessDocument, processHandler)
	subscribe("email_prepare", app.Queue.SubscribePrepareEmail, prepareHandler)
	subscribe("email_send", app.Queue.SubscribeSendEmail, sendHandler)

	wg.Wait()
}
