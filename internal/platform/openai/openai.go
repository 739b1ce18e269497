// Package openai adapts the OpenAI chat completions API to
// generation.CompletionClient.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/phrazzld/flashcard-synth/internal/config"
	"github.com/phrazzld/flashcard-synth/internal/generation"
)

// ProviderName labels errors and log entries produced by this adapter.
const ProviderName = "openai"

// Client implements generation.CompletionClient using chat completions.
type Client struct {
	client    openaisdk.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	logger    *slog.Logger
}

var _ generation.CompletionClient = (*Client)(nil)

// NewClient creates a Client from the LLM configuration. SDK-level retries
// are disabled; retry policy belongs to the caller.
func NewClient(logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:    openaisdk.NewClient(opts...),
		model:     cfg.ModelName,
		maxTokens: int64(cfg.MaxOutputTokens),
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:    logger,
	}, nil
}

// Complete sends the system prompt and document text as a two-message chat
// and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(c.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(req.SystemPrompt),
			openaisdk.UserMessage(req.UserContent),
		},
	}
	if c.maxTokens > 0 {
		params.MaxCompletionTokens = openaisdk.Int(c.maxTokens)
	}

	c.logger.DebugContext(ctx, "sending chat completion request",
		"provider", ProviderName,
		"model", c.model,
		"content_length", len(req.UserContent))

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", generation.NewCompletionError(ProviderName, classify(err), err)
	}

	if len(resp.Choices) == 0 {
		return "", generation.NewCompletionError(ProviderName, generation.KindInvalidResponse,
			errors.New("no choices in response"))
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", generation.NewCompletionError(ProviderName, generation.KindInvalidResponse,
			errors.New("reply blocked by content filter"))
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", generation.NewCompletionError(ProviderName, generation.KindInvalidResponse,
			errors.New("empty reply content"))
	}

	return choice.Message.Content, nil
}

func classify(err error) generation.CompletionErrorKind {
	var apiErr *openaisdk.Error
	if errors.As(err, &apiErr) {
		return generation.KindForStatus(apiErr.StatusCode)
	}
	return generation.KindNetwork
}
