package report

import "strings"

// LexicalSimilarity computes token-set Jaccard overlap between two texts as a
// percentage. It is deterministic and purely local, which makes it both the
// disaster fallback when the embedding provider is unavailable and the
// per-sentence fallback comparator.
func LexicalSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	inter := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}

	union := len(setA) + len(setB) - inter
	if union < 1 {
		union = 1
	}
	return float64(inter) / float64(union) * 100
}

func tokenSet(text string) map[string]struct{} {
	tokens := wordBoundaries.Split(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}
