package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/flashcard-synth/internal/config"
	"github.com/phrazzld/flashcard-synth/internal/generation"
	"google.golang.org/genai"
)

// ProviderName labels errors and log entries produced by this adapter.
const ProviderName = "gemini"

// Client implements generation.CompletionClient using the Gemini API.
type Client struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string

	maxOutputTokens int32
	timeout         time.Duration
}

var _ generation.CompletionClient = (*Client)(nil)

// validateConfig checks the settings the adapter cannot run without.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "missing Gemini API key")
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		logger.ErrorContext(ctx, "missing Gemini model name")
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.TimeoutSeconds <= 0 {
		logger.WarnContext(ctx, "no per-call timeout configured for Gemini client")
	}

	return nil
}

// NewClient creates a Gemini-backed completion client.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and other settings
//
// Returns:
//   - A properly initialized Client or an error if initialization fails
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Client{
		logger:          logger,
		client:          client,
		model:           cfg.ModelName,
		maxOutputTokens: int32(cfg.MaxOutputTokens),
		timeout:         time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// Complete makes a single GenerateContent call and returns the reply text.
func (c *Client) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		},
	}
	if c.maxOutputTokens > 0 {
		genConfig.MaxOutputTokens = c.maxOutputTokens
	}

	c.logger.DebugContext(ctx, "making Gemini API call",
		"provider", ProviderName,
		"model", c.model,
		"content_length", len(req.UserContent))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.UserContent), genConfig)
	if err != nil {
		return "", generation.NewCompletionError(ProviderName, classify(err), err)
	}

	text, err := replyText(resp)
	if err != nil {
		return "", generation.NewCompletionError(ProviderName, generation.KindInvalidResponse, err)
	}

	return text, nil
}

// replyText concatenates the text parts of the first candidate.
func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("nil response")
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no content generated")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", errors.New("content blocked by safety filters")
	}

	if candidate.Content == nil {
		return "", errors.New("empty content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("empty reply text")
	}

	return sb.String(), nil
}

func classify(err error) generation.CompletionErrorKind {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return generation.KindForStatus(apiErr.Code)
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return generation.KindForStatus(apiErrPtr.Code)
	}

	return generation.KindNetwork
}
