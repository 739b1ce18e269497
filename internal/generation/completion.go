package generation

import "context"

// CompletionClient wraps an external text-generation service.
//
// Complete sends the request and returns the complete reply text. Failures
// are reported as *CompletionError; implementations never retry and never
// return partial replies.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionClientFunc adapts an ordinary function to a CompletionClient.
type CompletionClientFunc func(ctx context.Context, req CompletionRequest) (string, error)

// Complete calls f(ctx, req).
func (f CompletionClientFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}
