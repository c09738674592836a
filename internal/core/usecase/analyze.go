package usecase

import (
	"context"
	"fmt"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
	"github.com/cloudwisedk/docuprocess/internal/core/ports"
	"github.com/cloudwisedk/docuprocess/internal/core/scoring"
)

type AnalyzeDocumentUseCase struct {
	refs   ports.ReferenceRepository
	engine *scoring.Engine
}

func NewAnalyzeDocumentUseCase(refs ports.ReferenceRepository, engine *scoring.Engine) *AnalyzeDocumentUseCase {
	return &AnalyzeDocumentUseCase{refs: refs, engine: engine}
}

// Analyze scores the extracted text against the current reference corpus.
// A corpus read failure aborts the run: scoring against a partial snapshot
// would silently misroute documents.
func (uc *AnalyzeDocumentUseCase) Analyze(ctx context.Context, documentID string, text string) (*domain.AnalysisReport, error) {
	corpus, err := uc.refs.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference corpus: %w", err)
	}

	scores, review := uc.engine.Evaluate(text, corpus)
	matched := scoring.MatchRecords(text, corpus)
	return &domain.AnalysisReport{
		DocumentID:           documentID,
		Scores:               scores,
		RequiresManualReview: review,
		Matched:              matched,
	}, nil
}
