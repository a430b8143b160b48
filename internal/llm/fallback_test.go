package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

type stubChatClient struct {
	resp  ChatResponse
	err   error
	calls int
}

func (s *stubChatClient) Complete(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	s.calls++
	return s.resp, s.err
}

func TestFallback_PrimarySucceeds(t *testing.T) {
	primary := &stubChatClient{resp: ChatResponse{Text: "primary"}}
	fallback := &stubChatClient{resp: ChatResponse{Text: "fallback"}}
	client := NewFallbackChatClient(primary, fallback, logging.Default())

	resp, err := client.Complete(context.Background(), ChatRequest{})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Text != "primary" {
		t.Errorf("got %q, want primary response", resp.Text)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback called %d times, want 0", fallback.calls)
	}
}

func TestFallback_PrimaryFailsFallbackUsed(t *testing.T) {
	primary := &stubChatClient{err: errors.New("gateway down")}
	fallback := &stubChatClient{resp: ChatResponse{Text: "fallback"}}
	client := NewFallbackChatClient(primary, fallback, logging.Default())

	resp, err := client.Complete(context.Background(), ChatRequest{})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Text != "fallback" {
		t.Errorf("got %q, want fallback response", resp.Text)
	}
}

func TestFallback_NoFallbackReturnsPrimaryError(t *testing.T) {
	primaryErr := errors.New("gateway down")
	client := NewFallbackChatClient(&stubChatClient{err: primaryErr}, nil, logging.Default())

	if _, err := client.Complete(context.Background(), ChatRequest{}); !errors.Is(err, primaryErr) {
		t.Fatalf("expected primary error, got %v", err)
	}
}

func TestFallback_BothFailReturnsFallbackError(t *testing.T) {
	fallbackErr := errors.New("also down")
	client := NewFallbackChatClient(
		&stubChatClient{err: errors.New("gateway down")},
		&stubChatClient{err: fallbackErr},
		logging.Default(),
	)

	if _, err := client.Complete(context.Background(), ChatRequest{}); !errors.Is(err, fallbackErr) {
		t.Fatalf("expected fallback error, got %v", err)
	}
}
