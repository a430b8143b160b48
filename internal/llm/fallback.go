package llm

import (
	"context"

	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

// FallbackChatClient wraps a primary chat client with a fallback provider.
// If the primary fails, it automatically retries with the fallback.
type FallbackChatClient struct {
	primary  ChatClient
	fallback ChatClient
	logger   *logging.Logger
}

// NewFallbackChatClient creates a fallback-enabled chat client. If fallback
// is nil, only the primary provider is used.
func NewFallbackChatClient(primary, fallback ChatClient, logger *logging.Logger) *FallbackChatClient {
	if primary == nil {
		panic("llm: primary chat client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackChatClient{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Complete sends the request to the primary provider and retries with the
// fallback on failure.
func (c *FallbackChatClient) Complete(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	resp, err := c.primary.Complete(ctx, req)
	if err == nil {
		return resp, nil
	}

	c.logger.Warn("primary chat provider failed, attempting fallback",
		"error", err.Error(),
		"fallback_available", c.fallback != nil,
	)

	if c.fallback == nil {
		return ChatResponse{}, err
	}

	fallbackResp, fallbackErr := c.fallback.Complete(ctx, req)
	if fallbackErr != nil {
		c.logger.Error("fallback chat provider also failed",
			"primary_error", err.Error(),
			"fallback_error", fallbackErr.Error(),
		)
		return ChatResponse{}, fallbackErr
	}

	c.logger.Info("fallback chat provider succeeded after primary failure")
	return fallbackResp, nil
}
