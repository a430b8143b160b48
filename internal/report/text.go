package report

import (
	"regexp"
	"strings"
)

// maxSentences caps sentence splitting so a pasted novel cannot blow up the
// per-sentence embedding batch.
const maxSentences = 300

var (
	sentenceEnd    = regexp.MustCompile(`([.?!])\s+`)
	demoMarker     = regexp.MustCompile(`(?i)\(demo only\)`)
	nonAlphanum    = regexp.MustCompile(`[^a-z0-9\s]`)
	wordBoundaries = regexp.MustCompile(`\W+`)
)

// FlattenReport concatenates the comparable fields of a report into the text
// used for similarity scoring: chief complaint, summary, then the
// recommendation, test, and medication lists period-joined, blank-line
// separated, with empty parts dropped.
func FlattenReport(r StructuredReport) string {
	parts := []string{
		r.ChiefComplaint,
		r.Summary,
		strings.Join(r.Recommendations, ". "),
		strings.Join(r.Tests, ". "),
		strings.Join(r.MedicationsRecommended, ". "),
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

// SplitSentences breaks text on sentence-terminal punctuation followed by
// whitespace, trims each piece, drops empties, and caps the result.
func SplitSentences(text string) []string {
	// Keep the terminator with its sentence by splitting after it.
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	pieces := strings.Split(marked, "\x00")

	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if len(out) == maxSentences {
			break
		}
	}
	return out
}

// NormalizeMedName canonicalizes a medication name for set comparison:
// lower-cased, demo marker and punctuation stripped, trimmed. Idempotent.
func NormalizeMedName(s string) string {
	s = strings.ToLower(s)
	s = demoMarker.ReplaceAllString(s, "")
	s = nonAlphanum.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
