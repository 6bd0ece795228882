package services

import (
	"context"
	"sync"
)

// MockResponse is a canned result for MockGenerationClient.
type MockResponse struct {
	Text string
	Err  error
}

// MockCall is one recorded Invoke.
type MockCall struct {
	Kind   CallKind
	Prompt string
}

// MockGenerationClient is a deterministic GenerationClient for tests. It
// returns canned responses in FIFO order and records every call.
type MockGenerationClient struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []MockCall
}

func NewMockGenerationClient(responses ...MockResponse) *MockGenerationClient {
	return &MockGenerationClient{responses: responses}
}

// Invoke returns the next canned response, or an InternalError once the
// queue is empty.
func (m *MockGenerationClient) Invoke(_ context.Context, kind CallKind, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Kind: kind, Prompt: prompt})

	if len(m.responses) == 0 {
		return "", &InternalError{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	return resp.Text, resp.Err
}

func (m *MockGenerationClient) Model(kind CallKind) string { return "mock-" + string(kind) }

func (m *MockGenerationClient) Provider() string { return "mock" }

// AddResponse appends a canned response to the queue.
func (m *MockGenerationClient) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Invoke calls made.
func (m *MockGenerationClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
