package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// CommitAnalysis stores the scoring result and routes the document in one
// transaction. A crash between the two writes would otherwise leave a
// scored document stuck in processing, or a routed document without its
// result row.
func (r *ResultRepository) CommitAnalysis(ctx context.Context, result *domain.ProcessingResult, status domain.DocumentStatus, processedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin analysis tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO processing_results (
	id, document_id, extracted_text,
	customer_match_score, policy_match_score, invoice_reconciliation_score, data_quality_score, overall_score,
	requires_manual_review, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		result.ID, result.DocumentID, result.ExtractedText,
		result.Scores.CustomerMatch, result.Scores.PolicyMatch, result.Scores.InvoiceReconciliation,
		result.Scores.DataQuality, result.Scores.Overall,
		result.RequiresManualReview, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert processing result: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
UPDATE documents
SET status = $2, error_message = '', processed_at = $3
WHERE id = $1
`, result.DocumentID, string(status), processedAt)
	if err != nil {
		return fmt.Errorf("route document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("route document: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "route document", nil)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit analysis tx: %w", err)
	}
	return nil
}

func (r *ResultRepository) LatestByDocument(ctx context.Context, documentID string) (*domain.ProcessingResult, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, document_id, extracted_text,
	customer_match_score, policy_match_score, invoice_reconciliation_score, data_quality_score, overall_score,
	requires_manual_review, created_at
FROM processing_results
WHERE document_id = $1
ORDER BY created_at DESC
LIMIT 1
`, documentID)

	var result domain.ProcessingResult
	err := row.Scan(
		&result.ID, &result.DocumentID, &result.ExtractedText,
		&result.Scores.CustomerMatch, &result.Scores.PolicyMatch, &result.Scores.InvoiceReconciliation,
		&result.Scores.DataQuality, &result.Scores.Overall,
		&result.RequiresManualReview, &result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrResultNotFound, "latest result", nil)
		}
		return nil, fmt.Errorf("scan processing result: %w", err)
	}
	return &result, nil
}
