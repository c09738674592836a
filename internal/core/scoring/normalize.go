// Package scoring implements the document scoring engine: entity
// extraction, fuzzy matching against the reference corpus, the four
// sub-scorers and their weighted composite, and the matched-records audit
// trail. Everything here is pure computation over an already-loaded corpus
// snapshot.
package scoring

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	anyDateRe    = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})\b`)
)

// NormalizeText collapses whitespace and rewrites dash/dot date separators
// to slashes so the entity extractor only ever sees one date shape.
func NormalizeText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = anyDateRe.ReplaceAllString(text, "$1/$2/$3")
	return strings.TrimSpace(text)
}
