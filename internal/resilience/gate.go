package resilience

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/phrazzld/flashcard-synth/internal/generation"
	"golang.org/x/sync/semaphore"
)

// Gate bounds the number of in-flight calls to a CompletionClient. Callers
// beyond the limit wait for a slot or for their context to end.
type Gate struct {
	next     generation.CompletionClient
	sem      *semaphore.Weighted
	limit    int64
	inFlight atomic.Int64
	waiting  atomic.Int64
}

var _ generation.CompletionClient = (*Gate)(nil)

// NewGate wraps next with an admission gate of the given size. Limits below
// one are raised to one.
func NewGate(next generation.CompletionClient, limit int) *Gate {
	if limit < 1 {
		limit = 1
	}
	return &Gate{
		next:  next,
		sem:   semaphore.NewWeighted(int64(limit)),
		limit: int64(limit),
	}
}

// Complete acquires a slot, calls the wrapped client and releases the slot.
func (g *Gate) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	g.waiting.Add(1)
	err := g.sem.Acquire(ctx, 1)
	g.waiting.Add(-1)
	if err != nil {
		return "", generation.NewCompletionError("", generation.KindNetwork,
			fmt.Errorf("waiting for completion slot: %w", err))
	}
	defer g.sem.Release(1)

	g.inFlight.Add(1)
	defer g.inFlight.Add(-1)

	return g.next.Complete(ctx, req)
}

// Limit returns the configured number of slots.
func (g *Gate) Limit() int64 { return g.limit }

// InFlight returns the number of calls currently holding a slot.
func (g *Gate) InFlight() int64 { return g.inFlight.Load() }

// Waiting returns the number of callers blocked on a slot.
func (g *Gate) Waiting() int64 { return g.waiting.Load() }
