package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOpenAIClientWithConfig(OpenAIConfig{
		Provider: "openai",
		APIKey:   "test-key",
		BaseURL:  server.URL,
		Model:    "test-model",
		Timeout:  5 * time.Second,
	})
}

func TestOpenAIComplete(t *testing.T) {
	var gotAuth, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Paris  "}}]}`))
	})

	got, err := client.Complete(context.Background(), "What is the capital of France?")
	require.NoError(t, err)

	assert.Equal(t, "Paris", got, "response should be trimmed")
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
}

func TestOpenAICompleteWithSystem(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	got, err := client.CompleteWithSystem(context.Background(), "You are terse.", "hello")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestOpenAIErrors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		client := NewOpenAIClient("")
		_, err := client.Complete(context.Background(), "hi")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "API key not configured", apiErr.Message)
	})

	t.Run("http error status carries server message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
		})

		_, err := client.Complete(context.Background(), "hi")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Incorrect API key provided", apiErr.Message)
	})

	t.Run("rate limit is not retried", func(t *testing.T) {
		var calls int
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
		})

		_, err := client.Complete(context.Background(), "hi")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.Equal(t, 1, calls, "failed calls must not retry")
	})

	t.Run("error object in 200 body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
		})

		_, err := client.Complete(context.Background(), "hi")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "model overloaded", apiErr.Message)
	})

	t.Run("no choices", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		})

		_, err := client.Complete(context.Background(), "hi")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "no completion returned", apiErr.Message)
	})

	t.Run("non-json error body passes through", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream unavailable"))
		})

		_, err := client.Complete(context.Background(), "hi")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "upstream unavailable", apiErr.Message)
	})

	t.Run("network failure", func(t *testing.T) {
		client := NewOpenAIClientWithConfig(OpenAIConfig{
			APIKey:  "test-key",
			BaseURL: "http://127.0.0.1:1",
			Model:   "test-model",
			Timeout: 2 * time.Second,
		})

		_, err := client.Complete(context.Background(), "hi")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
	})
}

func TestAPIErrorMessage(t *testing.T) {
	withStatus := &APIError{Provider: "openai", StatusCode: 429, Message: "quota exceeded"}
	assert.Equal(t, "openai API error (status 429): quota exceeded", withStatus.Error())

	bare := &APIError{Provider: "gemini", Message: "network unreachable"}
	assert.Equal(t, "gemini API error: network unreachable", bare.Error())

	t.Run("matches through wrapping", func(t *testing.T) {
		wrapped := errors.Join(errors.New("outer"), withStatus)
		var apiErr *APIError
		assert.ErrorAs(t, wrapped, &apiErr)
	})
}
