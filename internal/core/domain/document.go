package domain

import "time"

type DocumentStatus string

const (
	StatusPending          DocumentStatus = "pending"
	StatusProcessing       DocumentStatus = "processing"
	StatusAutoApproved     DocumentStatus = "auto_approved"
	StatusQuickReview      DocumentStatus = "quick_review"
	StatusManualReview     DocumentStatus = "manual_review"
	StatusManuallyApproved DocumentStatus = "manually_approved"
	StatusError            DocumentStatus = "error"
)

type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	FilePath    string         `json:"file_path"`
	Status      DocumentStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ProcessedAt *time.Time     `json:"processed_at,omitempty"`
}

// Processed reports whether the document finished a scoring pass. It is the
// idempotency test used by the ingestion dedup check.
func (d *Document) Processed() bool {
	return d.ProcessedAt != nil
}

var statusTransitions = map[DocumentStatus][]DocumentStatus{
	StatusPending:      {StatusProcessing},
	StatusProcessing:   {StatusAutoApproved, StatusQuickReview, StatusManualReview, StatusError},
	StatusQuickReview:  {StatusManuallyApproved},
	StatusManualReview: {StatusManuallyApproved},
	StatusError:        {StatusProcessing},
}

// CanTransitionTo enforces the forward-only document state machine. The only
// backward edge is error -> processing for re-queued documents.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ReviewStage reports whether the document is halted waiting for a human
// approve action.
func (s DocumentStatus) ReviewStage() bool {
	return s == StatusQuickReview || s == StatusManualReview
}

// RouteStatus maps an overall score to the post-processing status. Both
// thresholds are on the [0,1] scale and both boundaries are inclusive.
func RouteStatus(overall, autoApprove, quickReview float64) DocumentStatus {
	switch {
	case overall >= autoApprove:
		return StatusAutoApproved
	case overall >= quickReview:
		return StatusQuickReview
	default:
		return StatusManualReview
	}
}
