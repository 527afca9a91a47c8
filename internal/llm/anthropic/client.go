package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"projectdocs-backend/internal/llm"
)

const (
	defaultAPIURL    = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	maxTokens        = 4096
)

// Client implements llm.Client using the Anthropic Messages API.
type Client struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// NewClient constructs a new Anthropic client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("ANTHROPIC_MODEL is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("ANTHROPIC_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		apiURL: defaultAPIURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Analyze sends one request for the combined text and returns the first text
// segment of the model's reply. No retry: any failure maps to
// llm.ErrUpstreamUnavailable.
func (c *Client) Analyze(ctx context.Context, combinedText string) (string, error) {
	prompt := llm.BuildPrompt(combinedText)

	reqBody := messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", llm.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", llm.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: response parse: %v", llm.ErrUpstreamUnavailable, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s (%s)", llm.ErrUpstreamUnavailable, parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("%w: response missing content", llm.ErrUpstreamUnavailable)
	}

	return parsed.Content[0].Text, nil
}

var _ llm.Client = (*Client)(nil)
