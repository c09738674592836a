package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

var invoiceNumberRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)INV[-\s]?\d{4,10}`),
	regexp.MustCompile(`(?i)Invoice\s*#?\s*(\d{4,10})`),
	regexp.MustCompile(`\b\d{6,10}\b`),
	regexp.MustCompile(`(?i)[A-Z]{2,3}\d{6,8}`),
}

var invoiceKeywords = []string{
	"invoice", "receipt", "payment", "bill", "statement",
	"total", "subtotal", "tax", "due", "balance", "amount due",
	"paid", "transaction", "reference",
}

var nonAmountRe = regexp.MustCompile(`[^\d.]`)

// invoiceCandidates extracts tokens that look like invoice numbers. For
// patterns with a capture group only the group is kept.
func invoiceCandidates(text string) []string {
	var candidates []string
	for _, re := range invoiceNumberRes {
		if re.NumSubexp() == 0 {
			candidates = append(candidates, re.FindAllString(text, -1)...)
			continue
		}
		candidates = append(candidates, captureAll(re, text)...)
	}
	return candidates
}

// parseAmount strips everything but digits and dots and parses the rest.
func parseAmount(raw string) (float64, bool) {
	clean := nonAmountRe.ReplaceAllString(raw, "")
	if clean == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// InvoiceReconciliation scores financial reconciliation as a weighted
// composite, unlike the max-based scorers: invoice number/amount matching
// at 0.4 weight, transaction id/reference/amount matching at 0.3 weight, a
// structural score from amounts/dates/keywords, and a 0.1 cross-validation
// bonus when both match components individually exceed 0.5. Clamped to
// [0,1].
func InvoiceReconciliation(text string, entities Entities, invoices []domain.Invoice, transactions []domain.Transaction) float64 {
	score := 0.0
	lowerText := strings.ToLower(text)
	candidates := invoiceCandidates(text)
	amounts := entities.Amounts

	invoiceComponent := 0.0
	if len(invoices) > 0 {
		best := 0
		for _, invoice := range invoices {
			for _, candidate := range candidates {
				best = maxInt(best, Similarity(candidate, invoice.InvoiceNumber, ModeRatio))
			}
			for _, raw := range amounts {
				amount, ok := parseAmount(raw)
				if !ok {
					continue
				}
				diff := amount - invoice.Amount
				if diff < 0 {
					diff = -diff
				}
				switch {
				case diff < 0.01:
					best = maxInt(best, 95)
				case invoice.Amount != 0 && diff/invoice.Amount < 0.05:
					best = maxInt(best, 80)
				}
			}
		}
		invoiceComponent = float64(best) / 100.0
		score += invoiceComponent * 0.4
	}

	transactionComponent := 0.0
	if len(transactions) > 0 {
		best := 0
		for _, txn := range transactions {
			if strings.Contains(lowerText, strings.ToLower(txn.TransactionID)) {
				best = maxInt(best, 90)
			}
			if txn.ReferenceNumber != "" && strings.Contains(lowerText, strings.ToLower(txn.ReferenceNumber)) {
				best = maxInt(best, 85)
			}
			for _, raw := range amounts {
				amount, ok := parseAmount(raw)
				if !ok {
					continue
				}
				diff := amount - txn.Amount
				if diff < 0 {
					diff = -diff
				}
				abs := txn.Amount
				if abs < 0 {
					abs = -abs
				}
				switch {
				case diff < 0.01:
					best = maxInt(best, 90)
				case abs != 0 && diff/abs < 0.05:
					best = maxInt(best, 75)
				}
			}
		}
		transactionComponent = float64(best) / 100.0
		score += transactionComponent * 0.3
	}

	structure := 0.0
	if len(amounts) > 0 {
		structure += 0.1
		if len(amounts) > 1 {
			structure += 0.05
		}
	}
	hits := 0
	for _, kw := range invoiceKeywords {
		if strings.Contains(lowerText, kw) {
			hits++
		}
	}
	density := float64(hits) / float64(len(invoiceKeywords))
	if density > 0.15 {
		density = 0.15
	}
	structure += density
	if len(entities.Dates) > 0 {
		structure += 0.05
	}
	score += structure

	if invoiceComponent > 0.5 && transactionComponent > 0.5 {
		score += 0.1
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}
