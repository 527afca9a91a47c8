package llm

import (
	"context"
	"errors"
)

// ErrUpstreamUnavailable is returned when the remote model call fails for any
// reason: transport error, timeout, or a non-success status.
var ErrUpstreamUnavailable = errors.New("model endpoint unavailable")

// Client is the contract for requesting a document analysis from a model.
type Client interface {
	// Analyze sends one prompt built from the combined document text and
	// returns the first text segment of the model's reply verbatim. It does
	// not validate that the reply is JSON.
	Analyze(ctx context.Context, combinedText string) (string, error)
}

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

func (PlaceholderClient) Analyze(ctx context.Context, combinedText string) (string, error) {
	_ = ctx
	_ = combinedText
	return "", errors.New("llm client not configured")
}
