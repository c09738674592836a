package ports

import (
	"context"
	"time"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	GetByFilename(ctx context.Context, filename string) (*domain.Document, error)
	List(ctx context.Context, limit int) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
}

// ResultRepository persists analysis outcomes. CommitAnalysis writes the
// result row and the document's status/processed_at in one transaction, so
// a failed run never leaves a partial result behind.
type ResultRepository interface {
	CommitAnalysis(ctx context.Context, result *domain.ProcessingResult, status domain.DocumentStatus, processedAt time.Time) error
	LatestByDocument(ctx context.Context, documentID string) (*domain.ProcessingResult, error)
}

// ReferenceRepository reads the reference corpus. Snapshot returns one
// point-in-time view of all four record types; a single scoring pass uses
// exactly one snapshot.
type ReferenceRepository interface {
	Snapshot(ctx context.Context) (*domain.ReferenceCorpus, error)
}

// TaskQueue dispatches chain stages with at-least-once delivery. Publishing
// happens only after the prior stage's state is committed, so each stage
// reads committed state.
type TaskQueue interface {
	PublishProcessDocument(ctx context.Context, documentID string) error
	PublishPrepareEmail(ctx context.Context, documentID string) error
	PublishSendEmail(ctx context.Context, documentID string) error
}

// TextExtractor pulls raw text from a document's source file.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// OCREngine is the external OCR sidecar, used only as a fallback when
// direct text extraction comes back empty.
type OCREngine interface {
	Recognize(ctx context.Context, filePath string) (string, error)
}

// MailDispatcher hands a rendered message to the external mail robot.
type MailDispatcher interface {
	Send(ctx context.Context, msg *domain.EmailMessage) error
}
