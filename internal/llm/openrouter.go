package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenRouterConfig describes how to reach an OpenAI-compatible endpoint.
type OpenRouterConfig struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	Timeout        time.Duration
}

// OpenRouterClient implements ChatClient and Embedder against an
// OpenAI-compatible API (OpenRouter in production, any base URL in tests).
type OpenRouterClient struct {
	client         *openai.Client
	embeddingModel string
}

// NewOpenRouterClient validates the configuration and returns a ready client.
func NewOpenRouterClient(cfg OpenRouterConfig) (*OpenRouterClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("llm: openrouter api key required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := cfg.EmbeddingModel
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}

	return &OpenRouterClient{
		client:         openai.NewClientWithConfig(clientCfg),
		embeddingModel: model,
	}, nil
}

// Complete sends the chat request and returns the first choice's content.
// An empty choice list or empty content is an error: callers depend on
// non-empty model output.
func (c *OpenRouterClient) Complete(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := m.Role
		switch role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			role = RoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return ChatResponse{}, fmt.Errorf("llm: chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ChatResponse{}, errors.New("llm: chat completion returned no choices")
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return ChatResponse{}, errors.New("llm: chat completion returned empty content")
	}
	return ChatResponse{Text: content}, nil
}

// Embed vectorizes the batch in a single call. The response must contain one
// embedding per input, in input order.
func (c *OpenRouterClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := c.client.CreateEmbeddings(ctx, &openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.embeddingModel),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("llm: embedding response size mismatch: want %d, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		if len(item.Embedding) == 0 {
			return nil, fmt.Errorf("llm: embedding %d is empty", i)
		}
		vectors[i] = item.Embedding
	}
	return vectors, nil
}
