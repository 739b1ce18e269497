package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/flashcard-synth/internal/extract"
	"github.com/phrazzld/flashcard-synth/internal/generation"
)

// Request-level errors raised by the handler before the pipeline is called.
var (
	ErrMissingDocument      = errors.New("request contains no text or document")
	ErrUnsupportedMediaType = errors.New("unsupported content type")
	ErrInvalidRequestBody   = errors.New("invalid request body")
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var (
		maxBytesErr   *http.MaxBytesError
		extractErr    *generation.ExtractionError
		parseErr      *generation.ParseError
		completionErr *generation.CompletionError
	)

	switch {
	// Bad request errors
	case errors.Is(err, generation.ErrEmptyInput),
		errors.Is(err, ErrMissingDocument),
		errors.Is(err, ErrInvalidRequestBody):
		return http.StatusBadRequest

	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, ErrUnsupportedMediaType),
		errors.Is(err, extract.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType

	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity

	// Upstream generation service errors
	case errors.As(err, &completionErr):
		switch completionErr.Kind {
		case generation.KindRateLimited:
			return http.StatusTooManyRequests
		case generation.KindNetwork:
			return http.StatusGatewayTimeout
		default:
			return http.StatusBadGateway
		}

	case errors.As(err, &parseErr):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		maxBytesErr   *http.MaxBytesError
		extractErr    *generation.ExtractionError
		parseErr      *generation.ParseError
		completionErr *generation.CompletionError
	)

	switch {
	case errors.Is(err, generation.ErrEmptyInput):
		return "Document text is empty"

	case errors.Is(err, ErrMissingDocument):
		return "Provide document text or upload a PDF"

	case errors.Is(err, ErrInvalidRequestBody):
		return "Invalid request format"

	case errors.As(err, &maxBytesErr):
		return fmt.Sprintf("Request body exceeds %d bytes", maxBytesErr.Limit)

	case errors.Is(err, ErrUnsupportedMediaType),
		errors.Is(err, extract.ErrUnsupportedType):
		return "Unsupported document type; upload a PDF or plain text"

	case errors.Is(err, extract.ErrNoText):
		return "Document contains no extractable text"

	case errors.As(err, &extractErr):
		return "Could not extract text from document"

	case errors.As(err, &completionErr):
		switch completionErr.Kind {
		case generation.KindRateLimited:
			return "Generation service is busy, try again later"
		case generation.KindNetwork:
			return "Generation service did not respond"
		default:
			return "Generation service error"
		}

	case errors.As(err, &parseErr):
		return "Could not parse flashcards from model reply"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'GenerateFlashcardsRequest.Text' Error:Field validation for 'Text' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
