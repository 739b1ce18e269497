// Package anthropic adapts the Anthropic Messages API to
// generation.CompletionClient.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/phrazzld/flashcard-synth/internal/config"
	"github.com/phrazzld/flashcard-synth/internal/generation"
)

// ProviderName labels errors and log entries produced by this adapter.
const ProviderName = "anthropic"

// defaultMaxTokens is used when no output limit is configured; the
// Messages API requires one.
const defaultMaxTokens = 1024

// Client implements generation.CompletionClient using the Messages API.
type Client struct {
	client    anthropicsdk.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	logger    *slog.Logger
}

var _ generation.CompletionClient = (*Client)(nil)

// NewClient creates a Client from the LLM configuration with SDK retries disabled.
func NewClient(logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	maxTokens := int64(cfg.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Client{
		client:    anthropicsdk.NewClient(opts...),
		model:     cfg.ModelName,
		maxTokens: maxTokens,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:    logger,
	}, nil
}

// Complete sends the document as a single user message under the system
// prompt and concatenates the text blocks of the reply.
func (c *Client) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.DebugContext(ctx, "sending messages request",
		"provider", ProviderName,
		"model", c.model,
		"content_length", len(req.UserContent))

	resp, err := c.client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []anthropicsdk.TextBlockParam{
			{Text: req.SystemPrompt},
		},
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(req.UserContent)),
		},
	})
	if err != nil {
		return "", generation.NewCompletionError(ProviderName, classify(err), err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	reply := sb.String()
	if strings.TrimSpace(reply) == "" {
		return "", generation.NewCompletionError(ProviderName, generation.KindInvalidResponse,
			fmt.Errorf("no text content in response (stop reason %q)", resp.StopReason))
	}

	return reply, nil
}

func classify(err error) generation.CompletionErrorKind {
	var apiErr *anthropicsdk.Error
	if errors.As(err, &apiErr) {
		return generation.KindForStatus(apiErr.StatusCode)
	}
	return generation.KindNetwork
}
