package report

import (
	"fmt"
	"strings"
	"testing"
)

func TestFlattenReport(t *testing.T) {
	rep := StructuredReport{
		ChiefComplaint:         "persistent cough",
		Summary:                "Patient reports a dry cough for two weeks.",
		Recommendations:        []string{"Rest", "Hydration"},
		Tests:                  []string{"Chest X-ray", "CBC"},
		MedicationsRecommended: []string{"Expectorant (demo only)"},
	}

	got := FlattenReport(rep)
	want := "persistent cough\n\n" +
		"Patient reports a dry cough for two weeks.\n\n" +
		"Rest. Hydration\n\n" +
		"Chest X-ray. CBC\n\n" +
		"Expectorant (demo only)"
	if got != want {
		t.Errorf("FlattenReport() = %q, want %q", got, want)
	}
}

func TestFlattenReport_OmitsEmptyFields(t *testing.T) {
	rep := StructuredReport{
		ChiefComplaint: "fever",
		Summary:        "",
		Tests:          []string{},
	}

	got := FlattenReport(rep)
	if got != "fever" {
		t.Errorf("FlattenReport() = %q, want %q", got, "fever")
	}
}

func TestFlattenReport_EmptyReport(t *testing.T) {
	if got := FlattenReport(StructuredReport{}); got != "" {
		t.Errorf("FlattenReport(empty) = %q, want empty", got)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "mixed terminators",
			text: "Patient has fever. Any allergies? None reported! Follow up soon.",
			want: []string{"Patient has fever.", "Any allergies?", "None reported!", "Follow up soon."},
		},
		{
			name: "trims and drops empties",
			text: "  One.   Two.  ",
			want: []string{"One.", "Two."},
		},
		{
			name: "no terminator keeps whole text",
			text: "no punctuation here",
			want: []string{"no punctuation here"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitSentences() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitSentences_CapsOutput(t *testing.T) {
	var b strings.Builder
	for i := 0; i < maxSentences+50; i++ {
		fmt.Fprintf(&b, "Sentence number %d. ", i)
	}

	got := SplitSentences(b.String())
	if len(got) != maxSentences {
		t.Errorf("expected cap at %d sentences, got %d", maxSentences, len(got))
	}
}

func TestNormalizeMedName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Paracetamol (demo only)", "paracetamol"},
		{"Paracetamol (DEMO ONLY)", "paracetamol"},
		{"Trimethoprim-sulfamethoxazole", "trimethoprimsulfamethoxazole"},
		{"  Metformin  ", "metformin"},
		{"", ""},
		{"(demo only)", ""},
	}

	for _, tt := range tests {
		if got := NormalizeMedName(tt.in); got != tt.want {
			t.Errorf("NormalizeMedName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeMedName_Idempotent(t *testing.T) {
	inputs := []string{
		"Paracetamol (demo only)",
		"ACE inhibitor (class example) (demo only)",
		"Nitrofurantoin (example; demo only)",
		"already normalized",
		"",
		"  spaces  everywhere  ",
	}
	for _, in := range inputs {
		once := NormalizeMedName(in)
		twice := NormalizeMedName(once)
		if once != twice {
			t.Errorf("NormalizeMedName not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
