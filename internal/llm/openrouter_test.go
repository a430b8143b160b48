package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *OpenRouterClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewOpenRouterClient(OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("NewOpenRouterClient() error = %v", err)
	}
	return client
}

func TestNewOpenRouterClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewOpenRouterClient(OpenRouterConfig{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestComplete_ReturnsFirstChoice(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if body.Model != "google/gemini-2.0-flash-001" {
			t.Errorf("unexpected model %q", body.Model)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "hello there"}},
			},
		})
	})

	client := newTestClient(t, mux)
	resp, err := client.Complete(context.Background(), ChatRequest{
		Model:    "google/gemini-2.0-flash-001",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Text != "hello there" {
		t.Errorf("Complete() = %q, want %q", resp.Text, "hello there")
	}
}

func TestComplete_EmptyContentIsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  "}},
			},
		})
	})

	client := newTestClient(t, mux)
	if _, err := client.Complete(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	}); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestComplete_UpstreamErrorPropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	client := newTestClient(t, mux)
	if _, err := client.Complete(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	}); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestEmbed_OneVectorPerInput(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/embeddings", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		data := make([]map[string]any, len(body.Input))
		for i := range body.Input {
			data[i] = map[string]any{
				"embedding": []float32{float32(i) + 0.5, 1, 0},
				"index":     i,
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"data": data})
	})

	client := newTestClient(t, mux)
	vectors, err := client.Embed(context.Background(), []string{"fever", "headache", "cough"})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vectors))
	}
	if vectors[2][0] != 2.5 {
		t.Errorf("vectors out of input order: %v", vectors[2])
	}
}

func TestEmbed_SizeMismatchIsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/embeddings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{1, 0}, "index": 0}},
		})
	})

	client := newTestClient(t, mux)
	if _, err := client.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error for size mismatch")
	}
}

func TestEmbed_EmptyBatchSkipsCall(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no HTTP call expected for empty batch")
	}))
	vectors, err := client.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if vectors != nil {
		t.Errorf("expected nil vectors, got %v", vectors)
	}
}
