package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/flashcard-synth/internal/api"

	"github.com/phrazzld/flashcard-synth/internal/mocks"
	"github.com/phrazzld/flashcard-synth/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	log, _ := testutils.NewTestLogger()
	app, err := newApplicationWithClient(testConfig(), log, mocks.NewMockCompletionClientWithReply(parisReply))
	require.NoError(t, err)
	return app.setupRouter()
}

func TestRouterRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"landing", http.MethodGet, "/", http.StatusOK, "/generate-flashcards"},
		{"health", http.MethodGet, "/health", http.StatusOK, "OK"},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, "cards_generated_total"},
		{"generate requires POST", http.MethodGet, "/generate-flashcards", http.StatusMethodNotAllowed, ""},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantBody != "" {
				assert.Contains(t, w.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/generate-flashcards", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouterOverRealServer(t *testing.T) {
	t.Parallel()

	server := testutils.CreateTestServer(t, newTestRouter(t))

	t.Run("blank text", func(t *testing.T) {
		t.Parallel()

		resp := testutils.PostRequest(t, server, "/generate-flashcards", "text/plain", strings.NewReader("  \n"))
		testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "empty")
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()

		resp := testutils.PostRequest(t, server, "/generate-flashcards", "image/png", strings.NewReader("x"))
		testutils.AssertErrorResponse(t, resp, http.StatusUnsupportedMediaType, "Unsupported")
	})

	t.Run("generates cards", func(t *testing.T) {
		t.Parallel()

		resp := testutils.PostRequest(t, server, "/generate-flashcards", "text/plain",
			strings.NewReader("The capital of France is Paris."))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body api.GenerateFlashcardsResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Flashcards, 1)
		assert.Equal(t, "Capital", body.Flashcards[0].Title)
		assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	})
}
