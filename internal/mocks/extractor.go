package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/phrazzld/flashcard-synth/internal/generation"
)

var errMockCompletion = errors.New("mock completion failure")

// MockExtractor implements generation.TextExtractor for testing
type MockExtractor struct {
	ExtractTextFn func(ctx context.Context, data []byte) (string, error)

	Text string
	Err  error

	mu    sync.Mutex
	calls int
}

// ExtractText implements the generation.TextExtractor interface
func (m *MockExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.ExtractTextFn != nil {
		return m.ExtractTextFn(ctx, data)
	}
	return m.Text, m.Err
}

// CallCount returns how many times ExtractText was called
func (m *MockExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockObserver implements generation.Observer and records every outcome
type MockObserver struct {
	mu       sync.Mutex
	outcomes []generation.Outcome
}

// GenerationFinished implements the generation.Observer interface
func (m *MockObserver) GenerationFinished(_ context.Context, outcome generation.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

// Outcomes returns a copy of the recorded outcomes
func (m *MockObserver) Outcomes() []generation.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]generation.Outcome, len(m.outcomes))
	copy(result, m.outcomes)
	return result
}
