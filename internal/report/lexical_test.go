package report

import "testing"

func TestLexicalSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"fever and cough", "headache"},
		{"a b c d", "c d e f"},
		{"same text", "same text"},
		{"one", "completely different words"},
	}
	for _, p := range pairs {
		got := LexicalSimilarity(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("LexicalSimilarity(%q, %q) = %v, out of [0,100]", p[0], p[1], got)
		}
	}
}

func TestLexicalSimilarity_Identity(t *testing.T) {
	if got := LexicalSimilarity("patient has fever", "patient has fever"); got != 100 {
		t.Errorf("identity similarity = %v, want 100", got)
	}
}

func TestLexicalSimilarity_Symmetry(t *testing.T) {
	a := "Patient reports fever and headache."
	b := "Fever noted during examination."
	if LexicalSimilarity(a, b) != LexicalSimilarity(b, a) {
		t.Errorf("similarity is not symmetric for %q / %q", a, b)
	}
}

func TestLexicalSimilarity_EmptyInputs(t *testing.T) {
	if got := LexicalSimilarity("", ""); got != 0 {
		t.Errorf("empty/empty similarity = %v, want 0", got)
	}
	if got := LexicalSimilarity("fever", ""); got != 0 {
		t.Errorf("nonempty/empty similarity = %v, want 0", got)
	}
}

func TestLexicalSimilarity_CaseFolding(t *testing.T) {
	if got := LexicalSimilarity("FEVER Cough", "fever cough"); got != 100 {
		t.Errorf("case-folded similarity = %v, want 100", got)
	}
}

func TestLexicalSimilarity_PartialOverlap(t *testing.T) {
	// Tokens: {fever} vs {fever, headache} => 1/2.
	got := LexicalSimilarity("fever", "fever headache")
	if got != 50 {
		t.Errorf("partial overlap = %v, want 50", got)
	}
}
