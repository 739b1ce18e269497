// Package llm selects the completion client adapter for the configured
// provider.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashcard-synth/internal/config"
	"github.com/phrazzld/flashcard-synth/internal/generation"
	"github.com/phrazzld/flashcard-synth/internal/platform/anthropic"
	"github.com/phrazzld/flashcard-synth/internal/platform/gemini"
	"github.com/phrazzld/flashcard-synth/internal/platform/openai"
)

// NewClient returns the completion client for cfg.Provider.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.CompletionClient, error) {
	if logger != nil {
		logger = logger.With(slog.String("provider", cfg.Provider), slog.String("model", cfg.ModelName))
	}

	var (
		client generation.CompletionClient
		err    error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		client, err = unwrap(openai.NewClient(logger, cfg))
	case config.ProviderGemini:
		client, err = unwrap(gemini.NewClient(ctx, logger, cfg))
	case config.ProviderAnthropic:
		client, err = unwrap(anthropic.NewClient(logger, cfg))
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s completion client: %w", cfg.Provider, err)
	}
	return client, nil
}

// unwrap converts a concrete adapter result into the interface without
// leaking a typed nil on failure.
func unwrap[C generation.CompletionClient](client C, err error) (generation.CompletionClient, error) {
	if err != nil {
		return nil, err
	}
	return client, nil
}
