package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
	"github.com/cloudwisedk/docuprocess/internal/core/ports"
	"github.com/cloudwisedk/docuprocess/internal/core/scoring"
)

// RouteThresholds are the overall-score cutoffs for routing, on [0,1].
// Both boundaries are inclusive.
type RouteThresholds struct {
	AutoApprove float64
	QuickReview float64
}

type ProcessDocumentUseCase struct {
	repo       ports.DocumentRepository
	results    ports.ResultRepository
	extractor  ports.TextExtractor
	analyzer   ports.DocumentAnalyzer
	queue      ports.TaskQueue
	thresholds RouteThresholds
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	results ports.ResultRepository,
	extractor ports.TextExtractor,
	analyzer ports.DocumentAnalyzer,
	queue ports.TaskQueue,
	thresholds RouteThresholds,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:       repo,
		results:    results,
		extractor:  extractor,
		analyzer:   analyzer,
		queue:      queue,
		thresholds: thresholds,
	}
}

// ProcessByID runs the extraction and scoring pass for one document and
// commits the result together with the routed status in a single
// transaction. A document that already carries a final score is a no-op,
// which makes queue redeliveries safe. The returned status is the route
// this call committed; it stays empty when nothing was scored so callers
// only count routes once per document.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) (domain.DocumentStatus, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return "", fmt.Errorf("fetch document: %w", err)
	}
	if doc.Processed() {
		return "", nil
	}
	if doc.Status != domain.StatusProcessing && !doc.Status.CanTransitionTo(domain.StatusProcessing) {
		return "", domain.WrapError(domain.ErrInvalidInput, "process document",
			fmt.Errorf("document %s in status %s cannot enter processing", doc.ID, doc.Status))
	}

	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusProcessing, ""); err != nil {
		return "", fmt.Errorf("mark processing: %w", err)
	}

	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return "", uc.markError(ctx, doc.ID, fmt.Errorf("extract text: %w", err))
	}
	text = scoring.NormalizeText(text)

	report, err := uc.analyzer.Analyze(ctx, doc.ID, text)
	if err != nil {
		return "", uc.markError(ctx, doc.ID, fmt.Errorf("analyze document: %w", err))
	}

	now := time.Now().UTC()
	status := domain.RouteStatus(report.Scores.Overall, uc.thresholds.AutoApprove, uc.thresholds.QuickReview)
	result := &domain.ProcessingResult{
		ID:                   uuid.NewString(),
		DocumentID:           doc.ID,
		ExtractedText:        text,
		Scores:               report.Scores,
		RequiresManualReview: report.RequiresManualReview,
		CreatedAt:            now,
	}
	if err := uc.results.CommitAnalysis(ctx, result, status, now); err != nil {
		return "", uc.markError(ctx, doc.ID, fmt.Errorf("commit analysis: %w", err))
	}

	if status == domain.StatusAutoApproved {
		// The committed result stands even if the enqueue fails; the
		// caller decides whether to redeliver.
		if err := uc.queue.PublishPrepareEmail(ctx, doc.ID); err != nil {
			return status, fmt.Errorf("enqueue email preparation: %w", err)
		}
	}
	return status, nil
}

func (uc *ProcessDocumentUseCase) markError(ctx context.Context, documentID string, cause error) error {
	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusError, cause.Error()); err != nil {
		return fmt.Errorf("%w; mark error status: %v", cause, err)
	}
	return cause
}
