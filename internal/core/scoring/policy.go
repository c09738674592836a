package scoring

import (
	"regexp"
	"strings"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

var policyNumberRes = []*regexp.Regexp{
	regexp.MustCompile(`[A-Z]{2,3}\d{6,10}`), // e.g. POL123456789
	regexp.MustCompile(`\d{8,12}`),           // bare digit run
	regexp.MustCompile(`[A-Z]\d{7,9}`),       // e.g. P12345678
}

var policyKeywords = []string{"policy", "coverage", "premium", "claim", "deductible", "beneficiary"}

// policyCandidates extracts tokens that look like policy numbers.
func policyCandidates(text string) []string {
	var candidates []string
	for _, re := range policyNumberRes {
		candidates = append(candidates, re.FindAllString(text, -1)...)
	}
	return candidates
}

// PolicyMatch scores the text against stored policies: the best of direct
// number similarity (a verbatim mention counts 90) and a keyword-density
// score capped at 50 points, on the [0,1] scale. An empty corpus scores
// zero.
func PolicyMatch(text string, policies []domain.Policy) float64 {
	if len(policies) == 0 {
		return 0.0
	}

	best := 0
	candidates := policyCandidates(text)
	lowerText := strings.ToLower(text)

	for _, policy := range policies {
		for _, candidate := range candidates {
			score := Similarity(candidate, policy.PolicyNumber, ModeRatio)
			best = maxInt(best, score)
		}
		if strings.Contains(lowerText, strings.ToLower(policy.PolicyNumber)) {
			best = maxInt(best, 90)
		}
	}

	hits := 0
	for _, kw := range policyKeywords {
		if strings.Contains(lowerText, kw) {
			hits++
		}
	}
	keywordScore := float64(hits) / float64(len(policyKeywords)) * 50
	if keywordScore > 50 {
		keywordScore = 50
	}

	numberScore := float64(best)
	if keywordScore > numberScore {
		return keywordScore / 100.0
	}
	return numberScore / 100.0
}
