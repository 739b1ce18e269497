package resilience

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/flashcard-synth/internal/generation"
	"github.com/sethvargo/go-retry"
)

// minBaseDelay keeps the exponential backoff valid when no delay is configured.
const minBaseDelay = 10 * time.Millisecond

// Retrying re-invokes a CompletionClient when it fails with a retryable
// *generation.CompletionError (network or rate limiting).
type Retrying struct {
	next       generation.CompletionClient
	maxRetries uint64
	baseDelay  time.Duration
	logger     *slog.Logger
}

var _ generation.CompletionClient = (*Retrying)(nil)

// NewRetrying wraps next with up to maxRetries additional attempts. The wait
// before retry n is roughly baseDelay * 2^n with jitter. A maxRetries of zero
// returns next unchanged.
func NewRetrying(
	next generation.CompletionClient,
	maxRetries int,
	baseDelay time.Duration,
	logger *slog.Logger,
) generation.CompletionClient {
	if maxRetries <= 0 {
		return next
	}
	if baseDelay < minBaseDelay {
		baseDelay = minBaseDelay
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Retrying{
		next:       next,
		maxRetries: uint64(maxRetries),
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

func (r *Retrying) backoff() retry.Backoff {
	b := retry.NewExponential(r.baseDelay)
	b = retry.WithJitter(r.baseDelay/2, b)
	return retry.WithMaxRetries(r.maxRetries, b)
}

// Complete calls the wrapped client, retrying transient failures. Once the
// retry budget is spent the last error is returned unchanged. A context that
// ends while waiting between attempts yields a network CompletionError.
func (r *Retrying) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	var reply string
	attempt := 0

	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		attempt++
		var callErr error
		reply, callErr = r.next.Complete(ctx, req)
		if callErr == nil {
			return nil
		}

		var completionErr *generation.CompletionError
		if errors.As(callErr, &completionErr) && completionErr.Retryable() {
			r.logger.WarnContext(ctx, "retryable completion failure",
				"attempt", attempt,
				"max_attempts", r.maxRetries+1,
				"kind", completionErr.Kind)
			return retry.RetryableError(callErr)
		}
		return callErr
	})
	if err != nil {
		var completionErr *generation.CompletionError
		if !errors.As(err, &completionErr) {
			err = generation.NewCompletionError("", generation.KindNetwork, err)
		}
		return "", err
	}

	return reply, nil
}
