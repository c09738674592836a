package scoring

import (
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// MatchMode selects the similarity metric.
type MatchMode int

const (
	// ModeRatio compares two whole strings by edit distance.
	ModeRatio MatchMode = iota
	// ModePartialRatio finds the best-aligned substring, for when one
	// string is embedded in a longer one.
	ModePartialRatio
)

// AuditThreshold is the minimum similarity for a record to enter the
// matched-records audit trail. Raw scores below it still feed the
// composite calculation.
const AuditThreshold = 70

var nonDigitRe = regexp.MustCompile(`\D`)

// Similarity scores two strings in [0,100] using the given mode.
func Similarity(a, b string, mode MatchMode) int {
	if mode == ModePartialRatio {
		return fuzzy.PartialRatio(a, b)
	}
	return fuzzy.Ratio(a, b)
}

// FoldedSimilarity is Similarity over lowercased inputs.
func FoldedSimilarity(a, b string, mode MatchMode) int {
	return Similarity(strings.ToLower(a), strings.ToLower(b), mode)
}

// DigitSimilarity compares numeric identifiers digit-only: every non-digit
// character is stripped before scoring.
func DigitSimilarity(a, b string) int {
	return Similarity(DigitsOnly(a), DigitsOnly(b), ModeRatio)
}

// DigitsOnly strips everything but digits.
func DigitsOnly(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}
