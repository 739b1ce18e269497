package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/flashcard-synth/internal/extract"
	"github.com/phrazzld/flashcard-synth/internal/generation"
	"github.com/stretchr/testify/assert"
)

var errUpstream = errors.New("upstream said: invalid key sk-abcdefghijklmnopqrstuvwx")

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "An unexpected error occurred",
		},
		{
			name:           "empty input",
			err:            generation.ErrEmptyInput,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Document text is empty",
		},
		{
			name:           "missing document",
			err:            ErrMissingDocument,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Provide document text or upload a PDF",
		},
		{
			name:           "invalid body",
			err:            fmt.Errorf("%w: unexpected EOF", ErrInvalidRequestBody),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request format",
		},
		{
			name:           "body too large",
			err:            &http.MaxBytesError{Limit: 1024},
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedMsg:    "Request body exceeds 1024 bytes",
		},
		{
			name:           "unsupported content type",
			err:            fmt.Errorf("%w: image/png", ErrUnsupportedMediaType),
			expectedStatus: http.StatusUnsupportedMediaType,
			expectedMsg:    "Unsupported document type; upload a PDF or plain text",
		},
		{
			name:           "unsupported document",
			err:            &generation.ExtractionError{Err: fmt.Errorf("%w: image/png", extract.ErrUnsupportedType)},
			expectedStatus: http.StatusUnsupportedMediaType,
			expectedMsg:    "Unsupported document type; upload a PDF or plain text",
		},
		{
			name:           "document without text",
			err:            &generation.ExtractionError{Err: extract.ErrNoText},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "Document contains no extractable text",
		},
		{
			name:           "malformed pdf",
			err:            &generation.ExtractionError{Err: extract.ErrMalformedPDF},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "Could not extract text from document",
		},
		{
			name:           "rate limited",
			err:            generation.NewCompletionError("openai", generation.KindRateLimited, errUpstream),
			expectedStatus: http.StatusTooManyRequests,
			expectedMsg:    "Generation service is busy, try again later",
		},
		{
			name:           "network",
			err:            generation.NewCompletionError("openai", generation.KindNetwork, errUpstream),
			expectedStatus: http.StatusGatewayTimeout,
			expectedMsg:    "Generation service did not respond",
		},
		{
			name:           "auth",
			err:            generation.NewCompletionError("openai", generation.KindAuth, errUpstream),
			expectedStatus: http.StatusBadGateway,
			expectedMsg:    "Generation service error",
		},
		{
			name:           "invalid response",
			err:            generation.NewCompletionError("gemini", generation.KindInvalidResponse, errUpstream),
			expectedStatus: http.StatusBadGateway,
			expectedMsg:    "Generation service error",
		},
		{
			name:           "wrapped completion error",
			err:            fmt.Errorf("generate: %w", generation.NewCompletionError("", generation.KindRateLimited, errUpstream)),
			expectedStatus: http.StatusTooManyRequests,
			expectedMsg:    "Generation service is busy, try again later",
		},
		{
			name:           "parse error",
			err:            &generation.ParseError{Raw: "no cards here", Err: generation.ErrNotArray},
			expectedStatus: http.StatusBadGateway,
			expectedMsg:    "Could not parse flashcards from model reply",
		},
		{
			name:           "unknown error",
			err:            errors.New("database password=hunter2 leaked"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))

			msg := GetSafeErrorMessage(tc.err)
			assert.Equal(t, tc.expectedMsg, msg)
			assert.NotContains(t, msg, "sk-")
			assert.NotContains(t, msg, "hunter2")
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "required field",
			err:      errors.New("Key: 'GenerateFlashcardsRequest.Text' Error:Field validation for 'Text' failed on the 'required' tag"),
			expected: "Invalid Text: required field",
		},
		{
			name:     "unknown tag",
			err:      errors.New("Key: 'GenerateFlashcardsRequest.Text' Error:Field validation for 'Text' failed on the 'custom' tag"),
			expected: "Invalid Text: validation failed",
		},
		{
			name:     "not a validation error",
			err:      errors.New("something else"),
			expected: "Validation error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, SanitizeValidationError(tc.err))
		})
	}
}
