package doctors

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/medvoice/medvoice-ai-platform/internal/llm"
	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

// defaultSlate is returned when the model produces something unusable: a
// general physician plus the broadest premium specialists.
var defaultSlateIDs = []int{1, 2, 6}

// Suggester asks the chat model to match symptom notes against the catalog.
type Suggester struct {
	chat   llm.ChatClient
	model  string
	logger *logging.Logger
}

// NewSuggester creates a suggester.
func NewSuggester(chat llm.ChatClient, model string, logger *logging.Logger) *Suggester {
	if chat == nil {
		panic("doctors: chat client cannot be nil")
	}
	if model == "" {
		model = "google/gemini-2.0-flash-001"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Suggester{chat: chat, model: model, logger: logger}
}

// Suggest returns catalog specialists matching the user's symptom notes. The
// model only ranks: every returned agent is re-resolved against the catalog
// by id, so hallucinated entries never reach the caller. An unusable model
// response degrades to the default slate rather than failing the request.
func (s *Suggester) Suggest(ctx context.Context, notes string) ([]DoctorAgent, error) {
	catalogJSON, _ := json.Marshal(catalog)

	resp, err := s.chat.Complete(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{
				Role:    llm.RoleSystem,
				Content: "Here is a list of all available doctor agents:\n" + string(catalogJSON) + "\nOnly suggest doctors from this list.",
			},
			{
				Role: llm.RoleUser,
				Content: fmt.Sprintf("User Notes/Symptoms: %s. Based on these notes and symptoms, "+
					"suggest a list of matching doctors from the provided list. "+
					"Return ONLY a JSON array of doctor objects, no wrapping object and no markdown formatting.", notes),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("doctors: suggestion completion failed: %w", err)
	}

	suggested, err := parseSuggestions(resp.Text)
	if err != nil {
		s.logger.Warn("model suggestion unparseable, using default slate", "error", err)
		return defaultSlate(), nil
	}

	out := make([]DoctorAgent, 0, len(suggested))
	for _, doc := range suggested {
		if full, ok := ByID(doc.ID); ok {
			out = append(out, full)
		}
	}
	if len(out) == 0 {
		return defaultSlate(), nil
	}
	return out, nil
}

func defaultSlate() []DoctorAgent {
	out := make([]DoctorAgent, 0, len(defaultSlateIDs))
	for _, id := range defaultSlateIDs {
		if d, ok := ByID(id); ok {
			out = append(out, d)
		}
	}
	return out
}

// parseSuggestions strips fenced-code markup, extracts the outermost [...]
// block, and decodes the array.
func parseSuggestions(raw string) ([]DoctorAgent, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	first := strings.Index(cleaned, "[")
	last := strings.LastIndex(cleaned, "]")
	if first != -1 && last > first {
		cleaned = cleaned[first : last+1]
	}

	var suggested []DoctorAgent
	if err := json.Unmarshal([]byte(cleaned), &suggested); err != nil {
		return nil, fmt.Errorf("doctors: model output is not a JSON array: %w", err)
	}
	return suggested, nil
}
