package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockCall records one completion request made to a MockClient.
type MockCall struct {
	System string
	User   string
}

// MockClient is a scripted Client for tests and offline runs. Responses are
// consumed in order; once the script runs out, the last response repeats.
type MockClient struct {
	mu        sync.Mutex
	responses []string
	failAt    int
	failErr   error
	calls     []MockCall
}

// NewMockClient creates a mock that replies with the given responses in
// order. With no responses it echoes a canned acknowledgement.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{
		responses: responses,
		failAt:    -1,
	}
}

// FailAt makes the n-th call (zero-based) return err instead of a response.
func (m *MockClient) FailAt(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAt = n
	m.failErr = err
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	return m.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem implements Client.
func (m *MockClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.calls)
	m.calls = append(m.calls, MockCall{System: systemPrompt, User: userPrompt})

	if m.failAt >= 0 && n == m.failAt {
		return "", m.failErr
	}

	if len(m.responses) == 0 {
		return fmt.Sprintf("(mock) received %d characters", len(userPrompt)), nil
	}
	if n >= len(m.responses) {
		return m.responses[len(m.responses)-1], nil
	}
	return m.responses[n], nil
}

// Calls returns a copy of every request made so far, in order.
func (m *MockClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many requests have been made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
