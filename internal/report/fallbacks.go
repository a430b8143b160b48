package report

import "strings"

// DomainFallback is a fixed pair of safe placeholder tests and demo-labeled
// medication examples for one clinical domain.
type DomainFallback struct {
	Tests []string
	Meds  []string
}

// domainFallbacks holds demo-only placeholders substituted when the model
// refuses to name tests or medications. Loaded once; never mutated.
var domainFallbacks = map[string]DomainFallback{
	"general": {
		Tests: []string{"CBC", "CRP"},
		Meds:  []string{"Analgesic (e.g., paracetamol) (demo only)", "Antipyretic (demo only)"},
	},
	"respiratory": {
		Tests: []string{"Chest X-ray", "CBC"},
		Meds:  []string{"Expectorant (demo only)", "Bronchodilator (demo only)", "Analgesic (demo only)"},
	},
	"infection": {
		Tests: []string{"CBC", "CRP", "Blood culture (if indicated)"},
		Meds:  []string{"Analgesic (e.g., paracetamol) (demo only)", "Antibiotic (class example) (demo only)"},
	},
	"uti": {
		Tests: []string{"Urine analysis", "Urine culture"},
		Meds:  []string{"Nitrofurantoin (example; demo only)", "Trimethoprim-sulfamethoxazole (example; demo only)"},
	},
	"gastro": {
		Tests: []string{"Stool routine", "CBC"},
		Meds:  []string{"Oral rehydration (demo only)", "Antiemetic (demo only)"},
	},
	"cardio": {
		Tests: []string{"ECG", "Troponin (if indicated)"},
		Meds:  []string{"Antiplatelet (demo only)", "Analgesic (demo only)"},
	},
	"hypertension": {
		Tests: []string{"BP monitoring", "Basic metabolic panel"},
		Meds:  []string{"ACE inhibitor (class example) (demo only)", "Calcium channel blocker (demo only)"},
	},
	"diabetes": {
		Tests: []string{"Fasting blood glucose", "HbA1c"},
		Meds:  []string{"Metformin (example; demo only)", "Insulin (type-specific; demo only)"},
	},
}

// ChooseFallback selects the fallback domain from the agent specialty and the
// report's chief complaint. Rules are evaluated in a fixed order and the
// first match wins; reordering them changes which domain a mixed complaint
// lands in.
func ChooseFallback(specialty, chiefComplaint string) DomainFallback {
	spec := strings.ToLower(specialty)
	chief := strings.ToLower(chiefComplaint)

	switch {
	case strings.Contains(spec, "respir") || strings.Contains(chief, "cough") || strings.Contains(chief, "breath"):
		return domainFallbacks["respiratory"]
	case strings.Contains(chief, "fever") || strings.Contains(chief, "infection"):
		return domainFallbacks["infection"]
	case strings.Contains(chief, "urine") || strings.Contains(chief, "burning") || strings.Contains(chief, "dysuria"):
		return domainFallbacks["uti"]
	case strings.Contains(chief, "diarr") || strings.Contains(chief, "vomit") || strings.Contains(chief, "nausea"):
		return domainFallbacks["gastro"]
	case strings.Contains(spec, "cardio") || strings.Contains(chief, "chest"):
		return domainFallbacks["cardio"]
	case strings.Contains(spec, "hyper") || strings.Contains(chief, "blood pressure"):
		return domainFallbacks["hypertension"]
	case strings.Contains(spec, "diabet") || strings.Contains(chief, "sugar") || strings.Contains(chief, "glucose"):
		return domainFallbacks["diabetes"]
	default:
		return domainFallbacks["general"]
	}
}
