package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/phrazzld/flashcard-synth/internal/api/shared"
	"github.com/phrazzld/flashcard-synth/internal/generation"
	"github.com/phrazzld/flashcard-synth/internal/platform/logger"
)

// Multipart form fields accepted by the generation endpoint.
const (
	formFieldText     = "text"
	formFieldDocument = "pdf"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temporary files.
const multipartMemory = 4 << 20

// FlashcardGenerator turns document text or document bytes into flashcards.
type FlashcardGenerator interface {
	GenerateFlashcards(ctx context.Context, text string) (*generation.Result, error)
	GenerateFromDocument(ctx context.Context, data []byte) (*generation.Result, error)
}

// FlashcardHandler serves the flashcard generation endpoint.
type FlashcardHandler struct {
	generator      FlashcardGenerator
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler. Request bodies larger
// than maxUploadBytes are rejected with 413.
func NewFlashcardHandler(
	generator FlashcardGenerator,
	maxUploadBytes int64,
	logger *slog.Logger,
) *FlashcardHandler {
	if generator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator cannot be nil for FlashcardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FlashcardHandler")
	}

	return &FlashcardHandler{
		generator:      generator,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "flashcard_handler")),
	}
}

// submission is the decoded request input: either text or raw document bytes.
type submission struct {
	text     string
	document []byte
}

func (s submission) isDocument() bool {
	return s.document != nil
}

// GenerateFlashcards handles POST /generate-flashcards requests.
//
// Accepted bodies: application/json {"text": ...}, text/plain,
// application/x-www-form-urlencoded with a text field, multipart/form-data
// with a pdf file or text field, and raw application/pdf or
// application/octet-stream documents.
func (h *FlashcardHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r.Context())

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	sub, err := h.readSubmission(r)
	if err != nil {
		var validationErr validationError
		if errors.As(err, &validationErr) {
			shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(validationErr.err))
			return
		}
		h.respondWithError(w, r, err)
		return
	}

	var result *generation.Result
	if sub.isDocument() {
		log.Debug("generating flashcards from document", slog.Int("document_bytes", len(sub.document)))
		result, err = h.generator.GenerateFromDocument(r.Context(), sub.document)
	} else {
		log.Debug("generating flashcards from text", slog.Int("text_length", len(sub.text)))
		result, err = h.generator.GenerateFlashcards(r.Context(), sub.text)
	}
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateFlashcardsResponse{
		Flashcards: flashcardsToResponse(result.Cards),
		Dropped:    result.Dropped,
		RequestID:  result.RequestID.String(),
	})
}

// Health handles GET /health requests.
func (h *FlashcardHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusOK, "OK")
}

// Landing handles GET / requests with a short usage note.
func (h *FlashcardHandler) Landing(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusOK,
		"Flashcard generator. POST text or a PDF to /generate-flashcards.\n")
}

func (h *FlashcardHandler) requestLogger(ctx context.Context) *slog.Logger {
	if l, ok := logger.FromContext(ctx); ok {
		return l.With(slog.String("component", "flashcard_handler"))
	}
	return h.logger
}

func (h *FlashcardHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var opts []shared.ResponseOption
	var extractErr *generation.ExtractionError
	if errors.As(err, &extractErr) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

// validationError marks request struct validation failures.
type validationError struct {
	err error
}

func (e validationError) Error() string { return e.err.Error() }
func (e validationError) Unwrap() error { return e.err }

func (h *FlashcardHandler) readSubmission(r *http.Request) (submission, error) {
	mediaType := "text/plain"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return submission{}, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, ct)
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		var req GenerateFlashcardsRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			return submission{}, h.bodyError(err)
		}
		if err := shared.ValidateRequest(req); err != nil {
			return submission{}, validationError{err: err}
		}
		return submission{text: req.Text}, nil

	case "text/plain":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return submission{}, h.bodyError(err)
		}
		return submission{text: string(body)}, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return submission{}, h.bodyError(err)
		}
		if !r.PostForm.Has(formFieldText) {
			return submission{}, ErrMissingDocument
		}
		return submission{text: r.PostForm.Get(formFieldText)}, nil

	case "multipart/form-data":
		return h.readMultipart(r)

	case "application/pdf", "application/octet-stream":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return submission{}, h.bodyError(err)
		}
		if len(body) == 0 {
			return submission{}, ErrMissingDocument
		}
		return submission{document: body}, nil

	default:
		return submission{}, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

func (h *FlashcardHandler) readMultipart(r *http.Request) (submission, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return submission{}, h.bodyError(err)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, _, err := r.FormFile(formFieldDocument)
	switch {
	case err == nil:
		defer func() { _ = file.Close() }()
		data, err := io.ReadAll(file)
		if err != nil {
			return submission{}, h.bodyError(err)
		}
		if len(data) == 0 {
			return submission{}, ErrMissingDocument
		}
		return submission{document: data}, nil
	case !errors.Is(err, http.ErrMissingFile):
		return submission{}, h.bodyError(err)
	}

	if values, ok := r.MultipartForm.Value[formFieldText]; ok && len(values) > 0 {
		return submission{text: values[0]}, nil
	}
	return submission{}, ErrMissingDocument
}

// bodyError keeps size-limit failures recognizable and folds every other
// read or decode failure into ErrInvalidRequestBody.
func (h *FlashcardHandler) bodyError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	if strings.Contains(err.Error(), "request body too large") {
		return &http.MaxBytesError{Limit: h.maxUploadBytes}
	}
	return fmt.Errorf("%w: %v", ErrInvalidRequestBody, err)
}
