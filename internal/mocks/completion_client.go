package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/flashcard-synth/internal/generation"
)

// MockCompletionClient implements generation.CompletionClient for testing
type MockCompletionClient struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, req generation.CompletionRequest) (string, error)

	// Default response values
	Reply string
	Err   error

	// Call tracking for verification
	CompleteCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Complete was called
		Count int

		// Requests contains all requests passed to Complete calls
		Requests []generation.CompletionRequest
	}
}

// Complete implements the generation.CompletionClient interface
func (m *MockCompletionClient) Complete(
	ctx context.Context,
	req generation.CompletionRequest,
) (string, error) {
	m.CompleteCalls.mu.Lock()
	m.CompleteCalls.Count++
	m.CompleteCalls.Requests = append(m.CompleteCalls.Requests, req)
	m.CompleteCalls.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, req)
	}

	return m.Reply, m.Err
}

// CallCount returns how many times Complete was called
func (m *MockCompletionClient) CallCount() int {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	return m.CompleteCalls.Count
}

// LastRequest returns the most recent request, or false if Complete was never called
func (m *MockCompletionClient) LastRequest() (generation.CompletionRequest, bool) {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()

	if len(m.CompleteCalls.Requests) == 0 {
		return generation.CompletionRequest{}, false
	}
	return m.CompleteCalls.Requests[len(m.CompleteCalls.Requests)-1], true
}

// NewMockCompletionClientWithReply creates a MockCompletionClient that returns reply
func NewMockCompletionClientWithReply(reply string) *MockCompletionClient {
	return &MockCompletionClient{Reply: reply}
}

// NewMockCompletionClientWithError creates a MockCompletionClient that returns err
func NewMockCompletionClientWithError(err error) *MockCompletionClient {
	return &MockCompletionClient{Err: err}
}

// MockCompletionClientWithKind creates a MockCompletionClient that fails with
// a CompletionError of the given kind
func MockCompletionClientWithKind(kind generation.CompletionErrorKind) *MockCompletionClient {
	return &MockCompletionClient{
		Err: generation.NewCompletionError("mock", kind, errMockCompletion),
	}
}

// Reset resets the call tracking state
func (m *MockCompletionClient) Reset() {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()

	m.CompleteCalls.Count = 0
	m.CompleteCalls.Requests = nil
}
