package usecase

import (
	"context"
	"fmt"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
	"github.com/cloudwisedk/docuprocess/internal/core/ports"
)

// ReadDocumentsUseCase is the query side used by the MCP tools.
type ReadDocumentsUseCase struct {
	repo    ports.DocumentRepository
	results ports.ResultRepository
}

func NewReadDocumentsUseCase(repo ports.DocumentRepository, results ports.ResultRepository) *ReadDocumentsUseCase {
	return &ReadDocumentsUseCase{repo: repo, results: results}
}

func (uc *ReadDocumentsUseCase) GetByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	return doc, nil
}

func (uc *ReadDocumentsUseCase) List(ctx context.Context, limit int) ([]domain.Document, error) {
	docs, err := uc.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (uc *ReadDocumentsUseCase) LatestResult(ctx context.Context, documentID string) (*domain.ProcessingResult, error) {
	result, err := uc.results.LatestByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch processing result: %w", err)
	}
	return result, nil
}
