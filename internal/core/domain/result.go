package domain

import "time"

// ScoreSet holds the four sub-scores and their weighted composite, all on
// the [0,1] scale.
type ScoreSet struct {
	CustomerMatch         float64 `json:"customer_match"`
	PolicyMatch           float64 `json:"policy_match"`
	InvoiceReconciliation float64 `json:"invoice_reconciliation"`
	DataQuality           float64 `json:"data_quality"`
	Overall               float64 `json:"overall"`
}

// ProcessingResult is one completed analysis run for a document. Rows are
// append-only: reprocessing adds a new row and the latest by CreatedAt is
// the authoritative one.
type ProcessingResult struct {
	ID                   string    `json:"id"`
	DocumentID           string    `json:"document_id"`
	ExtractedText        string    `json:"extracted_text"`
	Scores               ScoreSet  `json:"scores"`
	RequiresManualReview bool      `json:"requires_manual_review"`
	CreatedAt            time.Time `json:"created_at"`
}

// RecordMatch is one reference record that cleared the audit threshold,
// with the signals that triggered it.
type RecordMatch struct {
	ID      int64    `json:"id"`
	Label   string   `json:"label"`
	Score   int      `json:"match_score"`
	Reasons []string `json:"match_reason"`
}

// MatchedRecords is the audit trail returned alongside the scores. It is a
// reporting side-channel and never feeds the score computation.
type MatchedRecords struct {
	Customers    []RecordMatch `json:"customers"`
	Policies     []RecordMatch `json:"policies"`
	Invoices     []RecordMatch `json:"invoices"`
	Transactions []RecordMatch `json:"transactions"`
}

// AnalysisReport is the response of the analysis boundary.
type AnalysisReport struct {
	DocumentID           string         `json:"document_id"`
	Scores               ScoreSet       `json:"scores"`
	RequiresManualReview bool           `json:"requires_manual_review"`
	Matched              MatchedRecords `json:"matched_records"`
}
