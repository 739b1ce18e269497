package llm

import (
	"context"
	"testing"

	"github.com/phrazzld/flashcard-synth/internal/config"
	"github.com/phrazzld/flashcard-synth/internal/generation"
	"github.com/phrazzld/flashcard-synth/internal/platform/anthropic"
	"github.com/phrazzld/flashcard-synth/internal/platform/gemini"
	"github.com/phrazzld/flashcard-synth/internal/platform/openai"
	"github.com/phrazzld/flashcard-synth/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig(provider string) config.LLMConfig {
	return config.LLMConfig{
		Provider:        provider,
		ModelName:       "test-model",
		OpenAIAPIKey:    "openai-key",
		GeminiAPIKey:    "gemini-key",
		AnthropicAPIKey: "anthropic-key",
		TimeoutSeconds:  5,
		MaxOutputTokens: 256,
	}
}

func TestNewClientSelectsAdapter(t *testing.T) {
	t.Parallel()

	log, _ := testutils.NewTestLogger()

	client, err := NewClient(context.Background(), log, baseConfig(config.ProviderOpenAI))
	require.NoError(t, err)
	assert.IsType(t, &openai.Client{}, client)

	client, err = NewClient(context.Background(), log, baseConfig(config.ProviderGemini))
	require.NoError(t, err)
	assert.IsType(t, &gemini.Client{}, client)

	client, err = NewClient(context.Background(), log, baseConfig(config.ProviderAnthropic))
	require.NoError(t, err)
	assert.IsType(t, &anthropic.Client{}, client)
}

func TestNewClientErrors(t *testing.T) {
	t.Parallel()

	log, _ := testutils.NewTestLogger()

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		client, err := NewClient(context.Background(), log, baseConfig("mistral"))
		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		assert.Nil(t, client)
	})

	t.Run("missing key returns untyped nil", func(t *testing.T) {
		t.Parallel()

		cfg := baseConfig(config.ProviderOpenAI)
		cfg.OpenAIAPIKey = ""

		client, err := NewClient(context.Background(), log, cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		assert.True(t, client == nil, "client should be a nil interface")
	})
}
