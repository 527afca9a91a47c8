package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"projectdocs-backend/internal/llm"
)

func testClient(url string) *Client {
	return &Client{
		apiKey:     "test-key",
		model:      "claude-test",
		apiURL:     url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestAnalyzeReturnsFirstTextSegment(t *testing.T) {
	var gotBody messagesRequest
	var gotVersion, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		gotKey = r.Header.Get("x-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": `{"projectName":"Alpha"}`},
				{"type": "text", "text": "ignored second segment"},
			},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	out, err := c.Analyze(context.Background(), "some document text")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if out != `{"projectName":"Alpha"}` {
		t.Fatalf("unexpected output: %q", out)
	}
	if gotVersion != "2023-06-01" {
		t.Fatalf("anthropic-version header = %q", gotVersion)
	}
	if gotKey != "test-key" {
		t.Fatalf("x-api-key header = %q", gotKey)
	}
	if gotBody.Model != "claude-test" || gotBody.MaxTokens != maxTokens {
		t.Fatalf("request body model=%q max_tokens=%d", gotBody.Model, gotBody.MaxTokens)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" {
		t.Fatalf("expected a single user message, got %+v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[0].Content, "some document text") {
		t.Fatalf("prompt missing document text")
	}
}

func TestAnalyzeNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Analyze(context.Background(), "text")
	if !errors.Is(err, llm.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestAnalyzeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := testClient(srv.URL)
	_, err := c.Analyze(context.Background(), "text")
	if !errors.Is(err, llm.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestAnalyzeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "overloaded_error", "message": "try later"},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Analyze(context.Background(), "text")
	if !errors.Is(err, llm.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient("", "claude-test"); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	if _, err := NewClient("key", " "); err == nil {
		t.Fatalf("expected error for missing model")
	}
}
