package scoring

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

var (
	dearRe      = regexp.MustCompile(`Dear\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	nameLabelRe = regexp.MustCompile(`Name:\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	phoneRe     = regexp.MustCompile(`[\d\-()+\s]+`)
)

var nameTitles = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true,
	"mr.": true, "mrs.": true, "ms.": true, "dr.": true,
	"name": true,
}

// customerIndicators extracts candidate customer names from text: a title
// word plus the following one or two words, "Dear X" salutations and
// "Name:" labels.
func customerIndicators(text string) []string {
	var names []string

	words := strings.Fields(text)
	for i := 0; i < len(words)-1; i++ {
		if !nameTitles[strings.ToLower(words[i])] {
			continue
		}
		names = append(names, words[i]+" "+words[i+1])
		if i+2 < len(words) && isAlpha(strings.ReplaceAll(words[i+2], ",", "")) {
			names = append(names, words[i]+" "+words[i+1]+" "+words[i+2])
		}
	}

	names = append(names, captureAll(dearRe, text)...)
	names = append(names, captureAll(nameLabelRe, text)...)
	return names
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// CustomerMatch scores how well the text identifies a known customer: the
// global best of name, email and phone similarity across every customer,
// on the [0,1] scale. An empty corpus scores zero.
func CustomerMatch(text string, customers []domain.Customer) float64 {
	if len(customers) == 0 {
		return 0.0
	}

	best := 0
	indicators := customerIndicators(text)
	emails := emailRe.FindAllString(text, -1)
	phones := phoneRe.FindAllString(text, -1)

	for _, customer := range customers {
		for _, indicator := range indicators {
			score := FoldedSimilarity(indicator, customer.Name, ModePartialRatio)
			best = maxInt(best, score)
		}

		if customer.Email != "" {
			for _, email := range emails {
				score := FoldedSimilarity(email, customer.Email, ModeRatio)
				best = maxInt(best, score)
			}
		}

		if customer.Phone != "" {
			for _, phone := range phones {
				if len(DigitsOnly(phone)) < 7 {
					continue
				}
				best = maxInt(best, DigitSimilarity(customer.Phone, phone))
			}
		}
	}

	return float64(best) / 100.0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
