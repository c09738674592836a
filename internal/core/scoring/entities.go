package scoring

import "regexp"

// Entities are the structured signals pulled out of normalized text.
type Entities struct {
	Dates   []string `json:"dates"`
	Amounts []string `json:"amounts"`
	Emails  []string `json:"emails"`
}

var (
	dateRe   = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4})\b`)
	amountRe = regexp.MustCompile(`[$€£]\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`)
	emailRe  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// ExtractEntities pulls dates, currency amounts and email addresses out of
// text. It never fails; categories with no matches come back empty. The
// currency symbol is stripped from amounts, case is preserved on emails.
func ExtractEntities(text string) Entities {
	return Entities{
		Dates:   captureAll(dateRe, text),
		Amounts: captureAll(amountRe, text),
		Emails:  emailRe.FindAllString(text, -1),
	}
}

// captureAll returns the first capture group of every match.
func captureAll(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
