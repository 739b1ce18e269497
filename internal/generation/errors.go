package generation

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the generation package
var (
	// ErrEmptyInput is returned when the document text is empty or whitespace-only
	ErrEmptyInput = errors.New("document text is empty")

	// ErrNoCandidates is returned when a reply parses as an empty array
	ErrNoCandidates = errors.New("reply contains no flashcard candidates")

	// ErrNotArray is returned when a reply's structured value is not a JSON array
	ErrNotArray = errors.New("reply is not a JSON array")

	// ErrNilClient is returned when a pipeline is built without a completion client
	ErrNilClient = errors.New("completion client cannot be nil")

	// ErrNoExtractor is returned when document bytes are submitted to a pipeline
	// that has no text extractor configured
	ErrNoExtractor = errors.New("no text extractor configured")

	// ErrInvalidConfig is returned when a completion client configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// CompletionErrorKind classifies why the generation service could not be used.
type CompletionErrorKind string

// Completion failure kinds.
const (
	KindNetwork         CompletionErrorKind = "network"
	KindAuth            CompletionErrorKind = "auth"
	KindRateLimited     CompletionErrorKind = "rate_limited"
	KindInvalidResponse CompletionErrorKind = "invalid_response"
)

// CompletionError is returned by a CompletionClient when the generation
// service fails to produce a usable reply.
type CompletionError struct {
	Kind     CompletionErrorKind
	Provider string
	Err      error
}

// NewCompletionError wraps err as a CompletionError of the given kind.
func NewCompletionError(provider string, kind CompletionErrorKind, err error) *CompletionError {
	return &CompletionError{Kind: kind, Provider: provider, Err: err}
}

func (e *CompletionError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("completion service error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s completion service error (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// Retryable reports whether a caller-layered retry could plausibly succeed.
func (e *CompletionError) Retryable() bool {
	return e.Kind == KindNetwork || e.Kind == KindRateLimited
}

// ParseError is returned when a completion reply cannot be recovered as an
// array of flashcard triples. Raw holds the reply text for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse flashcards from reply (%d bytes): %v", len(e.Raw), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractionError is returned when document bytes cannot be decoded into text.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract document text: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// KindForStatus maps an HTTP status code returned by a generation service to
// a CompletionErrorKind.
func KindForStatus(status int) CompletionErrorKind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusRequestTimeout, status >= http.StatusInternalServerError:
		return KindNetwork
	default:
		return KindInvalidResponse
	}
}
