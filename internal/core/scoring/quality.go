package scoring

import (
	"strings"
	"unicode/utf8"
)

var documentIndicators = []string{"date:", "amount:", "total:", "from:", "to:", "subject:"}

// DataQuality is a structural heuristic over the text and its extracted
// entities, independent of the reference corpus. Additive out of 10, then
// normalized to [0,1].
func DataQuality(text string, entities Entities) float64 {
	score := 0.0

	if len(entities.Dates) > 0 {
		score += 2.0
	}
	if len(entities.Amounts) > 0 {
		score += 2.0
	}
	if len(entities.Emails) > 0 {
		score += 1.5
	}

	// Length bonuses count characters, not bytes, so multibyte text
	// does not clear the thresholds early.
	length := utf8.RuneCountInString(text)
	if length > 100 {
		score += 1.5
	}
	if length > 500 {
		score += 1.0
	}

	if strings.ContainsAny(text, "\n\t|") {
		score += 1.0
	}

	lowerText := strings.ToLower(text)
	hits := 0
	for _, indicator := range documentIndicators {
		if strings.Contains(lowerText, indicator) {
			hits++
		}
	}
	labelScore := float64(hits) * 0.5
	if labelScore > 1.0 {
		labelScore = 1.0
	}
	score += labelScore

	score /= 10.0
	if score > 1.0 {
		return 1.0
	}
	return score
}
