package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/flashcard-synth/internal/config"
	"github.com/phrazzld/flashcard-synth/internal/extract"
	"github.com/phrazzld/flashcard-synth/internal/generation"
	"github.com/phrazzld/flashcard-synth/internal/metrics"
	"github.com/phrazzld/flashcard-synth/internal/platform/llm"
	"github.com/phrazzld/flashcard-synth/internal/resilience"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	pipeline *generation.Pipeline
	metrics  *metrics.Metrics
}

// newApplication wires the completion client, resilience wrappers, text
// extractor, metrics and pipeline from configuration.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	client, err := llm.NewClient(ctx, logger.With("component", "completion_client"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completion client: %w", err)
	}
	logger.Info("Completion client initialized",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.ModelName)

	return newApplicationWithClient(cfg, logger, client)
}

// newApplicationWithClient builds the application around an existing
// completion client.
func newApplicationWithClient(
	cfg *config.Config,
	logger *slog.Logger,
	client generation.CompletionClient,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	// Concurrency gate sits inside the retry loop so backoff never holds a slot.
	if cfg.LLM.MaxConcurrency > 0 {
		gate := resilience.NewGate(client, cfg.LLM.MaxConcurrency)
		app.metrics.RegisterGate(gate)
		client = gate
	}
	client = resilience.NewRetrying(
		client,
		cfg.LLM.MaxRetries,
		time.Duration(cfg.LLM.RetryDelaySeconds)*time.Second,
		logger.With("component", "completion_retry"),
	)

	prompts, err := generation.LoadPromptBuilder(cfg.LLM.PromptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt: %w", err)
	}

	app.pipeline, err = generation.NewPipeline(client,
		generation.WithLogger(logger.With("component", "pipeline")),
		generation.WithPromptBuilder(prompts),
		generation.WithExtractor(extract.New(logger.With("component", "extractor"))),
		generation.WithObserver(app.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation pipeline: %w", err)
	}

	logger.Info("Application initialized successfully",
		"max_concurrency", cfg.LLM.MaxConcurrency,
		"max_retries", cfg.LLM.MaxRetries)
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
