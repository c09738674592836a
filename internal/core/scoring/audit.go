package scoring

import (
	"fmt"
	"strings"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

// MatchRecords builds the audit trail: every reference record whose best
// match score cleared AuditThreshold, with the signals that triggered it.
func MatchRecords(text string, corpus *domain.ReferenceCorpus) domain.MatchedRecords {
	matched := domain.MatchedRecords{
		Customers:    []domain.RecordMatch{},
		Policies:     []domain.RecordMatch{},
		Invoices:     []domain.RecordMatch{},
		Transactions: []domain.RecordMatch{},
	}

	lowerText := strings.ToLower(text)
	indicators := customerIndicators(text)
	emails := emailRe.FindAllString(text, -1)
	entities := ExtractEntities(text)
	policyNumbers := policyCandidates(text)

	for _, customer := range corpus.Customers {
		score := 0
		var reasons []string

		for _, indicator := range indicators {
			s := FoldedSimilarity(indicator, customer.Name, ModePartialRatio)
			if s > AuditThreshold {
				score = maxInt(score, s)
				reasons = append(reasons, fmt.Sprintf("Name match: %s", indicator))
			}
		}
		if customer.Email != "" {
			for _, email := range emails {
				s := FoldedSimilarity(email, customer.Email, ModeRatio)
				if s > 80 {
					score = maxInt(score, s)
					reasons = append(reasons, fmt.Sprintf("Email match: %s", email))
				}
			}
		}

		if score > AuditThreshold {
			matched.Customers = append(matched.Customers, domain.RecordMatch{
				ID: customer.ID, Label: customer.Name, Score: score, Reasons: reasons,
			})
		}
	}

	for _, policy := range corpus.Policies {
		score := 0
		var reasons []string

		for _, candidate := range policyNumbers {
			s := Similarity(candidate, policy.PolicyNumber, ModeRatio)
			if s > AuditThreshold {
				score = maxInt(score, s)
				reasons = append(reasons, fmt.Sprintf("Policy number match: %s", candidate))
			}
		}
		if strings.Contains(lowerText, strings.ToLower(policy.PolicyNumber)) {
			score = maxInt(score, 90)
			reasons = append(reasons, fmt.Sprintf("Direct policy mention: %s", policy.PolicyNumber))
		}

		if score > AuditThreshold {
			matched.Policies = append(matched.Policies, domain.RecordMatch{
				ID: policy.ID, Label: policy.PolicyNumber, Score: score, Reasons: reasons,
			})
		}
	}

	for _, invoice := range corpus.Invoices {
		score := 0
		var reasons []string

		if strings.Contains(lowerText, strings.ToLower(invoice.InvoiceNumber)) {
			score = maxInt(score, 95)
			reasons = append(reasons, fmt.Sprintf("Invoice number match: %s", invoice.InvoiceNumber))
		}
		for _, raw := range entities.Amounts {
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
				score = maxInt(score, 95)
				reasons = append(reasons, fmt.Sprintf("Exact amount match: $%.2f", invoice.Amount))
			case invoice.Amount != 0 && diff/invoice.Amount < 0.05:
				score = maxInt(score, 80)
				reasons = append(reasons, fmt.Sprintf("Close amount match: $%.2f", invoice.Amount))
			}
		}

		if score > AuditThreshold {
			matched.Invoices = append(matched.Invoices, domain.RecordMatch{
				ID: invoice.ID, Label: invoice.InvoiceNumber, Score: score, Reasons: reasons,
			})
		}
	}

	for _, txn := range corpus.Transactions {
		score := 0
		var reasons []string

		if strings.Contains(lowerText, strings.ToLower(txn.TransactionID)) {
			score = maxInt(score, 90)
			reasons = append(reasons, fmt.Sprintf("Transaction ID match: %s", txn.TransactionID))
		}
		if txn.ReferenceNumber != "" && strings.Contains(lowerText, strings.ToLower(txn.ReferenceNumber)) {
			score = maxInt(score, 85)
			reasons = append(reasons, fmt.Sprintf("Reference match: %s", txn.ReferenceNumber))
		}
		for _, raw := range entities.Amounts {
			amount, ok := parseAmount(raw)
			if !ok {
				continue
			}
			diff := amount - txn.Amount
			if diff < 0 {
				diff = -diff
			}
			if diff < 0.01 {
				score = maxInt(score, 90)
				reasons = append(reasons, fmt.Sprintf("Exact amount match: $%.2f", txn.Amount))
			}
		}

		if score > AuditThreshold {
			matched.Transactions = append(matched.Transactions, domain.RecordMatch{
				ID: txn.ID, Label: txn.TransactionID, Score: score, Reasons: reasons,
			})
		}
	}

	return matched
}
