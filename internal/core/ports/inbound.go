package ports

import (
	"context"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

// DocumentIngestor is the inbound contract for newly observed files.
type DocumentIngestor interface {
	ObserveFile(ctx context.Context, path string) error
}

// DocumentProcessor runs the first chain stage for a document. The returned
// status is the route committed by this call, or empty when the call scored
// nothing (redelivery no-op, failure before commit).
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) (domain.DocumentStatus, error)
}

// DocumentAnalyzer is the analysis boundary: scores extracted text against
// the reference corpus. It may run in-process or behind a call boundary.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, documentID, text string) (*domain.AnalysisReport, error)
}

// DocumentApprover resumes the chain for documents halted in a review
// state. A manual approve continues exactly like an automatic approval.
type DocumentApprover interface {
	Approve(ctx context.Context, documentID string) error
}

// EmailNotifier renders and dispatches the completion notification.
type EmailNotifier interface {
	PrepareEmail(ctx context.Context, documentID string) error
	SendEmail(ctx context.Context, documentID string) error
}

// DocumentReader is the read model for the tool surface.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, limit int) ([]domain.Document, error)
	LatestResult(ctx context.Context, documentID string) (*domain.ProcessingResult, error)
}
