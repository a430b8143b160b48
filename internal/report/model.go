package report

// StructuredReport is the canonical record summarizing an AI consultation.
// Field names and JSON tags mirror the schema the model is prompted with, so
// a synthesized report can round-trip through the API unchanged.
type StructuredReport struct {
	SessionID              string   `json:"sessionId"`
	Agent                  string   `json:"agent"`
	User                   string   `json:"user"`
	Timestamp              string   `json:"timestamp"`
	ChiefComplaint         string   `json:"chiefComplaint"`
	Summary                string   `json:"summary"`
	Symptoms               []string `json:"symptoms"`
	Duration               string   `json:"duration"`
	Severity               string   `json:"severity"`
	MedicationsMentioned   []string `json:"medicationsMentioned"`
	Recommendations        []string `json:"recommendations"`
	Tests                  []string `json:"tests"`
	MedicationsRecommended []string `json:"medicationsRecommended"`
}

// SentenceMatch scores one doctor-report sentence against the AI report text.
type SentenceMatch struct {
	Sentence   string  `json:"sentence"`
	Similarity float64 `json:"similarity"`
}

// ComparisonResult is the transient outcome of comparing an AI report against
// a doctor-authored report. It is returned to the caller and never persisted.
type ComparisonResult struct {
	Similarity float64         `json:"similarity"`
	Matches    []SentenceMatch `json:"matches"`
	Summary    string          `json:"summary"`
	AIText     string          `json:"aiText"`
}

// MedicationComparison is the set-based comparison of two medication lists.
type MedicationComparison struct {
	JaccardScore float64  `json:"jaccardScore"`
	Intersection []string `json:"intersection"`
	AIOnly       []string `json:"aiOnly"`
	DoctorOnly   []string `json:"doctorOnly"`
}

// Meta is the synthesis metadata envelope returned alongside the report.
type Meta struct {
	UsedRetry            bool                 `json:"usedRetry"`
	UsedFallbackForTests bool                 `json:"usedFallbackForTests"`
	UsedFallbackForMeds  bool                 `json:"usedFallbackForMeds"`
	MedicationComparison MedicationComparison `json:"medicationComparison"`
}

// SessionDetails carries the consultation context the synthesizer needs:
// which agent ran the call and anything the doctor side reported.
type SessionDetails struct {
	SelectedDoctor            DoctorInfo `json:"selectedDoctor"`
	Notes                     string     `json:"notes,omitempty"`
	DoctorReportedMedications []string   `json:"doctorReportedMedications,omitempty"`
}

// DoctorInfo identifies the agent persona used for a consultation.
type DoctorInfo struct {
	ID         int    `json:"id,omitempty"`
	Specialist string `json:"specialist"`
	Name       string `json:"name,omitempty"`
}

// TranscriptMessage is one turn of the voice conversation.
type TranscriptMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
