package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements ChatClient using Google's Gemini API directly.
// It serves as the fallback provider when the OpenRouter gateway is down.
type GeminiClient struct {
	client  *genai.Client
	modelID string
}

// NewGeminiClient creates a Gemini-backed chat client.
func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("llm: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client, modelID: modelID}, nil
}

// Close releases the underlying Gemini API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Complete sends a completion request to Gemini. System messages become the
// system instruction; the request model is ignored in favor of the configured
// Gemini model.
func (c *GeminiClient) Complete(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	model := c.client.GenerativeModel(c.modelID)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	var system []string
	var turns []Message
	for _, msg := range req.Messages {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		if msg.Role == RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		turns = append(turns, msg)
	}
	if len(system) > 0 {
		model.SystemInstruction = genai.NewUserContent(genai.Text(strings.Join(system, "\n\n")))
	}
	if len(turns) == 0 {
		// A system-only prompt still needs a user turn for Gemini.
		if len(system) == 0 {
			return ChatResponse{}, errors.New("llm: gemini requires at least one message")
		}
		turns = []Message{{Role: RoleUser, Content: "Proceed."}}
	}

	cs := model.StartChat()
	for _, msg := range turns[:len(turns)-1] {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(turns[len(turns)-1].Content))
	if err != nil {
		return ChatResponse{}, fmt.Errorf("llm: gemini completion failed: %w", err)
	}

	text := geminiResponseText(resp)
	if strings.TrimSpace(text) == "" {
		return ChatResponse{}, errors.New("llm: gemini returned empty content")
	}
	return ChatResponse{Text: text}, nil
}

func geminiResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}
