package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Config describes how to reach the OCR extraction service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// OCRClient proxies PDF and image uploads to the extraction service, which
// runs the heavy OCR models we do not want in this process.
type OCRClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewOCRClient validates the configuration and returns a ready-to-use client.
func NewOCRClient(cfg Config) (*OCRClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("extract: base URL required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OCRClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type ocrResponse struct {
	Text string `json:"text"`
}

// ExtractText uploads the document and returns the recognized text.
func (c *OCRClient) ExtractText(ctx context.Context, filename string, content []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("extract: failed to build upload: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("extract: failed to build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("extract: failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", &body)
	if err != nil {
		return "", fmt.Errorf("extract: request build failed: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if strings.TrimSpace(c.apiKey) != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("extract: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("extract: read response failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extract: service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out ocrResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("extract: decode response failed: %w", err)
	}
	return out.Text, nil
}
