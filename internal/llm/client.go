// Package llm provides the model API boundary: text in, text out, failures
// as *APIError. One Gemini implementation uses the official SDK, an
// OpenAI-compatible implementation speaks raw HTTP for OpenAI and
// OpenRouter endpoints, and a scripted mock serves tests and offline runs.
//
// A failed call is terminal for the request that made it. There is no
// automatic retry or backoff at this layer; callers surface the error and
// the session carries on.
package llm

import (
	"context"
	"fmt"
)

// Client is the interface all model providers implement.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// APIError is a failed model call: invalid key, quota exhaustion, network
// failure, or a blocked/empty response. The message is shown to the user
// verbatim.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

// errKeyMissing is the shared not-configured failure for real providers.
func errKeyMissing(provider string) *APIError {
	return &APIError{Provider: provider, Message: "API key not configured"}
}
