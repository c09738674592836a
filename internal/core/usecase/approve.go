package usecase

import (
	"context"
	"fmt"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
	"github.com/cloudwisedk/docuprocess/internal/core/ports"
)

type ApproveDocumentUseCase struct {
	repo  ports.DocumentRepository
	queue ports.TaskQueue
}

func NewApproveDocumentUseCase(repo ports.DocumentRepository, queue ports.TaskQueue) *ApproveDocumentUseCase {
	return &ApproveDocumentUseCase{repo: repo, queue: queue}
}

// Approve moves a document out of a review queue and triggers the email
// notification chain. Only documents routed to quick or manual review can
// be approved.
func (uc *ApproveDocumentUseCase) Approve(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document: %w", err)
	}
	if !doc.Status.ReviewStage() {
		return domain.WrapError(domain.ErrInvalidInput, "approve document",
			fmt.Errorf("document %s in status %s cannot be approved", doc.ID, doc.Status))
	}
	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusManuallyApproved, ""); err != nil {
		return fmt.Errorf("mark manually approved: %w", err)
	}
	if err := uc.queue.PublishPrepareEmail(ctx, doc.ID); err != nil {
		// The approval stands; the notification can be re-triggered.
		return fmt.Errorf("enqueue email preparation: %w", err)
	}
	return nil
}
