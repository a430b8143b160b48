package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/medvoice/medvoice-ai-platform/internal/llm"
	"github.com/medvoice/medvoice-ai-platform/internal/observability/metrics"
	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

// reportGenPrompt demands a single JSON object and instructs the model to
// substitute demo-labeled generic medication names instead of refusing.
const reportGenPrompt = `You are an AI Medical Voice Agent that just finished a voice conversation with a user.
Based on the provided agent info and conversation transcript, produce a single, valid JSON object and NOTHING else.

CRITICAL RULES
- Respond ONLY with a single JSON object (no text, no markdown, no backticks, no explanations).
- The JSON object MUST include all keys in the REQUIRED SCHEMA below (keys are case-sensitive).
- If you would normally refuse to recommend medications for legal/ethical reasons, you MUST instead return a set of example/demo medication names labeled with the suffix " (demo only)" and provide only general medication names or drug classes - do NOT include specific dosing or prescriptive instructions. This is for demonstration purposes only.
- Provide 2-3 tests in the "tests" array (simple names like "CBC", "Chest X-ray", "CRP").
- Use empty arrays [] for unknown lists, and "Anonymous" when user name is not available.
- Use ISO 8601 for the "timestamp" field.

REQUIRED JSON SCHEMA
{
  "sessionId": "string",
  "agent": "string",
  "user": "string",
  "timestamp": "ISO Date string",
  "chiefComplaint": "string",
  "summary": "string",
  "symptoms": ["symptom1", "symptom2"],
  "duration": "string",
  "severity": "mild|moderate|severe",
  "medicationsMentioned": ["med1", "med2"],
  "recommendations": ["rec1", "rec2"],
  "tests": ["test1", "test2"],
  "medicationsRecommended": ["medName (demo only)", "Another med (demo only)"]
}

Return only the JSON object. Nothing else.`

// retryPromptTemplate is deliberately different from the primary prompt: it
// embeds the malformed output and asks only for corrected JSON.
const retryPromptTemplate = `The previous response was not valid JSON for the required schema.
Return ONLY a single valid JSON object that matches the schema exactly (no explanation, no backticks).
If you are missing data, provide empty arrays [] or "Anonymous" / reasonable defaults.
Schema keys required:
sessionId, agent, user, timestamp, chiefComplaint, summary, symptoms, duration, severity, medicationsMentioned, recommendations, tests, medicationsRecommended
Previous response: %s
Return only the corrected JSON object now.`

const (
	primaryMaxTokens = 1400
	retryMaxTokens   = 900
	maxFallbackItems = 3
	demoLabel        = " (demo only)"
)

var (
	scalarKeys = []string{"sessionId", "agent", "user", "timestamp", "chiefComplaint", "summary", "duration", "severity"}
	listKeys   = []string{"symptoms", "medicationsMentioned", "recommendations", "tests", "medicationsRecommended"}

	synthTracer = otel.Tracer("medvoice.internal.report.synthesize")
)

// ReportStore is the storage collaborator the synthesizer persists through.
// internal/session's repository satisfies it.
type ReportStore interface {
	UpdateReport(ctx context.Context, sessionID string, report, conversation json.RawMessage) error
}

// Synthesizer drives the chat-completion provider to turn a raw conversation
// transcript into a schema-conformant StructuredReport.
type Synthesizer struct {
	chat    llm.ChatClient
	store   ReportStore
	model   string
	metrics *metrics.ReportMetrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewSynthesizer builds a synthesizer. store may be nil when persistence is
// handled elsewhere (tests); metrics may be nil.
func NewSynthesizer(chat llm.ChatClient, store ReportStore, model string, m *metrics.ReportMetrics, logger *logging.Logger) *Synthesizer {
	if chat == nil {
		panic("report: chat client cannot be nil")
	}
	if model == "" {
		model = "google/gemini-2.0-flash-001"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Synthesizer{
		chat:    chat,
		store:   store,
		model:   model,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Synthesize produces a validated StructuredReport from a transcript,
// persists it, and returns it with the synthesis metadata. doctorMeds is the
// optional externally supplied doctor medication list for the comparison
// embedded in the metadata.
func (s *Synthesizer) Synthesize(ctx context.Context, transcript []TranscriptMessage, details SessionDetails, sessionID string, doctorMeds []string) (*StructuredReport, *Meta, error) {
	ctx, span := synthTracer.Start(ctx, "report.synthesize")
	defer span.End()
	span.SetAttributes(attribute.String("medvoice.session_id", sessionID))

	parsed, usedRetry, err := s.generateReportObject(ctx, transcript, details)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveSynthesis("error", usedRetry)
		return nil, nil, err
	}
	span.SetAttributes(attribute.Bool("medvoice.used_retry", usedRetry))

	if missing := validateReportObject(parsed); len(missing) > 0 {
		// Missing tests/medicationsRecommended is repairable below; anything
		// else is a terminal schema failure.
		if !onlyTestsAndMeds(missing) {
			err := &SchemaError{Missing: missing}
			span.RecordError(err)
			s.metrics.ObserveSynthesis("schema_error", usedRetry)
			return nil, nil, err
		}
	}

	rep := buildReport(parsed, sessionID)
	rep.Timestamp = s.normalizeTimestamp(rep.Timestamp)

	fallback := ChooseFallback(details.SelectedDoctor.Specialist, rep.ChiefComplaint)
	usedFallbackForTests := false
	if IsRefusalList(rep.Tests) {
		rep.Tests = capItems(fallback.Tests, maxFallbackItems)
		usedFallbackForTests = true
		s.metrics.ObserveFallbackInjected("tests")
	}
	usedFallbackForMeds := false
	if IsRefusalList(rep.MedicationsRecommended) {
		rep.MedicationsRecommended = capItems(fallback.Meds, maxFallbackItems)
		usedFallbackForMeds = true
		s.metrics.ObserveFallbackInjected("medicationsRecommended")
	}
	rep.MedicationsRecommended = ensureDemoLabel(rep.MedicationsRecommended)

	if len(doctorMeds) == 0 {
		doctorMeds = details.DoctorReportedMedications
	}
	meta := &Meta{
		UsedRetry:            usedRetry,
		UsedFallbackForTests: usedFallbackForTests,
		UsedFallbackForMeds:  usedFallbackForMeds,
		MedicationComparison: CompareMedicationLists(rep.MedicationsRecommended, doctorMeds),
	}

	if err := s.persist(ctx, sessionID, rep, transcript); err != nil {
		span.RecordError(err)
		s.metrics.ObserveSynthesis("persist_error", usedRetry)
		return nil, nil, err
	}

	s.metrics.ObserveSynthesis("success", usedRetry)
	return rep, meta, nil
}

// generateReportObject runs the chat call and JSON extraction with a single
// corrective retry on malformed output. Transport failures are terminal on
// either attempt; only unparseable model output is retried.
func (s *Synthesizer) generateReportObject(ctx context.Context, transcript []TranscriptMessage, details SessionDetails) (map[string]any, bool, error) {
	detailsJSON, _ := json.Marshal(details)
	transcriptJSON, _ := json.Marshal(transcript)
	userInput := "AI Doctor Agent Info:" + string(detailsJSON) + ", Conversation:" + string(transcriptJSON)

	chatStart := time.Now()
	resp, err := s.chat.Complete(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: reportGenPrompt},
			{Role: llm.RoleUser, Content: userInput},
		},
		Temperature: 0,
		MaxTokens:   primaryMaxTokens,
	})
	s.metrics.ObserveProviderCall("openrouter", "chat", time.Since(chatStart).Seconds())
	if err != nil {
		return nil, false, fmt.Errorf("report: synthesis completion failed: %w", err)
	}

	if parsed, err := parseReportJSON(resp.Text); err == nil {
		return parsed, false, nil
	}
	s.logger.Warn("initial report parse failed, retrying with corrective prompt", "raw_len", len(resp.Text))

	retryStart := time.Now()
	retryResp, err := s.chat.Complete(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: fmt.Sprintf(retryPromptTemplate, resp.Text)},
		},
		Temperature: 0,
		MaxTokens:   retryMaxTokens,
	})
	s.metrics.ObserveProviderCall("openrouter", "chat", time.Since(retryStart).Seconds())
	if err != nil {
		return nil, true, fmt.Errorf("report: synthesis retry failed: %w", err)
	}

	parsed, parseErr := parseReportJSON(retryResp.Text)
	if parseErr != nil {
		s.logger.Error("retry produced invalid JSON", "error", parseErr)
		return nil, true, ErrInvalidModelJSON
	}
	return parsed, true, nil
}

func (s *Synthesizer) persist(ctx context.Context, sessionID string, rep *StructuredReport, transcript []TranscriptMessage) error {
	if s.store == nil {
		return nil
	}
	reportJSON, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistReport, err)
	}
	conversationJSON, err := json.Marshal(transcript)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistReport, err)
	}
	if err := s.store.UpdateReport(ctx, sessionID, reportJSON, conversationJSON); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistReport, err)
	}
	return nil
}

// normalizeTimestamp keeps a parseable instant as-is (normalized to RFC 3339
// UTC) and substitutes generation time otherwise.
func (s *Synthesizer) normalizeTimestamp(value string) string {
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return ts.UTC().Format(time.RFC3339)
		}
	}
	return s.now().UTC().Format(time.RFC3339)
}

// parseReportJSON strips fenced-code markup, extracts the outermost {...}
// block, and decodes it into a generic object.
func parseReportJSON(raw string) (map[string]any, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first != -1 && last > first {
		cleaned = cleaned[first : last+1]
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("report: model output is not valid JSON: %w", err)
	}
	return parsed, nil
}

// validateReportObject returns the missing/mistyped required keys.
func validateReportObject(obj map[string]any) []string {
	var missing []string
	for _, key := range scalarKeys {
		v, ok := obj[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		if _, isString := v.(string); !isString {
			missing = append(missing, key+" (should be string)")
		}
	}
	for _, key := range listKeys {
		v, ok := obj[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		if _, isArray := v.([]any); !isArray {
			missing = append(missing, key+" (should be array)")
		}
	}
	return missing
}

func onlyTestsAndMeds(missing []string) bool {
	tolerated := map[string]struct{}{
		"tests":                   {},
		"medicationsRecommended":  {},
		"tests (should be array)": {},
		"medicationsRecommended (should be array)": {},
	}
	for _, m := range missing {
		if _, ok := tolerated[m]; !ok {
			return false
		}
	}
	return true
}

// buildReport maps the validated object into the typed report. List fields
// coerce to empty slices when absent or mistyped; the sessionId supplied by
// the caller wins over whatever the model echoed back.
func buildReport(obj map[string]any, sessionID string) *StructuredReport {
	rep := &StructuredReport{
		SessionID:              stringField(obj, "sessionId"),
		Agent:                  stringField(obj, "agent"),
		User:                   stringField(obj, "user"),
		Timestamp:              stringField(obj, "timestamp"),
		ChiefComplaint:         stringField(obj, "chiefComplaint"),
		Summary:                stringField(obj, "summary"),
		Duration:               stringField(obj, "duration"),
		Severity:               stringField(obj, "severity"),
		Symptoms:               stringListField(obj, "symptoms"),
		MedicationsMentioned:   stringListField(obj, "medicationsMentioned"),
		Recommendations:        stringListField(obj, "recommendations"),
		Tests:                  stringListField(obj, "tests"),
		MedicationsRecommended: stringListField(obj, "medicationsRecommended"),
	}
	if sessionID != "" {
		rep.SessionID = sessionID
	}
	if strings.TrimSpace(rep.User) == "" {
		rep.User = "Anonymous"
	}
	return rep
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

func stringListField(obj map[string]any, key string) []string {
	items, ok := obj[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

func capItems(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// ensureDemoLabel appends the demo-only marker to entries missing it.
func ensureDemoLabel(meds []string) []string {
	out := make([]string, len(meds))
	for i, med := range meds {
		if demoMarker.MatchString(med) {
			out[i] = med
		} else {
			out[i] = med + demoLabel
		}
	}
	return out
}
