package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/flashcard-synth/internal/generation"
	"github.com/phrazzld/flashcard-synth/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCompletionClient(t *testing.T) {
	t.Parallel()

	t.Run("default reply", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewMockCompletionClientWithReply(`[["T","F","B"]]`)
		req := generation.CompletionRequest{SystemPrompt: "sys", UserContent: "text"}

		reply, err := client.Complete(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, `[["T","F","B"]]`, reply)
		assert.Equal(t, 1, client.CallCount())
		last, ok := client.LastRequest()
		require.True(t, ok)
		assert.Equal(t, req, last)
	})

	t.Run("typed failure", func(t *testing.T) {
		t.Parallel()

		client := mocks.MockCompletionClientWithKind(generation.KindRateLimited)

		_, err := client.Complete(context.Background(), generation.CompletionRequest{})

		var completionErr *generation.CompletionError
		require.True(t, errors.As(err, &completionErr))
		assert.Equal(t, generation.KindRateLimited, completionErr.Kind)
	})

	t.Run("custom function and reset", func(t *testing.T) {
		t.Parallel()

		client := &mocks.MockCompletionClient{
			CompleteFn: func(_ context.Context, req generation.CompletionRequest) (string, error) {
				return req.UserContent, nil
			},
		}

		reply, err := client.Complete(context.Background(), generation.CompletionRequest{UserContent: "echo"})
		require.NoError(t, err)
		assert.Equal(t, "echo", reply)

		client.Reset()
		assert.Equal(t, 0, client.CallCount())
		_, ok := client.LastRequest()
		assert.False(t, ok)
	})
}

func TestMockObserverRecordsOutcomes(t *testing.T) {
	t.Parallel()

	obs := &mocks.MockObserver{}
	obs.GenerationFinished(context.Background(), generation.Outcome{Status: generation.OutcomeSuccess, Cards: 2})

	outcomes := obs.Outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, generation.OutcomeSuccess, outcomes[0].Status)
}
