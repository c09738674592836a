package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
	"github.com/cloudwisedk/docuprocess/internal/core/ports"
)

type IngestDocumentUseCase struct {
	repo  ports.DocumentRepository
	queue ports.TaskQueue
}

func NewIngestDocumentUseCase(repo ports.DocumentRepository, queue ports.TaskQueue) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{repo: repo, queue: queue}
}

// ObserveFile registers a newly detected file and enqueues processing.
// Ingestion is idempotent on filename: a document that already finished a
// scoring pass is skipped, while an in-flight or errored one is re-queued
// so crash recovery needs no separate path.
func (uc *IngestDocumentUseCase) ObserveFile(ctx context.Context, path string) error {
	filename := filepath.Base(path)
	if !SupportedFile(filename) {
		return domain.WrapError(domain.ErrInvalidInput, "observe file", fmt.Errorf("unsupported file type: %s", filename))
	}

	existing, err := uc.repo.GetByFilename(ctx, filename)
	if err != nil && !domain.IsKind(err, domain.ErrDocumentNotFound) {
		return fmt.Errorf("dedup lookup: %w", err)
	}

	if existing != nil {
		if existing.Processed() {
			return nil
		}
		if err := uc.queue.PublishProcessDocument(ctx, existing.ID); err != nil {
			return fmt.Errorf("re-enqueue document: %w", err)
		}
		return nil
	}

	doc := &domain.Document{
		ID:        uuid.NewString(),
		Filename:  filename,
		FilePath:  path,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	if err := uc.queue.PublishProcessDocument(ctx, doc.ID); err != nil {
		return fmt.Errorf("enqueue document: %w", err)
	}
	return nil
}

// SupportedFile reports whether the filename has an ingestible extension.
func SupportedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".eml":
		return true
	default:
		return false
	}
}
