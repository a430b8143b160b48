package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn sent to a completion provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest describes one chat-completion call. A zero MaxTokens leaves the
// provider default in place; Temperature is always sent (the report pipeline
// relies on temperature 0).
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// ChatResponse carries the assistant text of the first choice.
type ChatResponse struct {
	Text string
}

// ChatClient produces chat completions.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// Embedder turns a batch of texts into vectors, one per input in input order.
// Implementations must fail rather than return a payload whose length does
// not match the input.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
