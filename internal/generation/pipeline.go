package generation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcard-synth/internal/domain"
	"github.com/phrazzld/flashcard-synth/internal/redact"
)

// maxLoggedReply caps how much of an unparseable reply is written to the log.
const maxLoggedReply = 2048

// TextExtractor decodes uploaded document bytes into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// OutcomeStatus labels how a pipeline invocation ended.
type OutcomeStatus string

// Pipeline outcome statuses.
const (
	OutcomeSuccess          OutcomeStatus = "success"
	OutcomeEmptyInput       OutcomeStatus = "empty_input"
	OutcomeExtractionFailed OutcomeStatus = "extraction_failed"
	OutcomeCompletionFailed OutcomeStatus = "completion_failed"
	OutcomeParseFailed      OutcomeStatus = "parse_failed"
)

// Outcome summarizes one pipeline invocation for observers.
type Outcome struct {
	Status OutcomeStatus
	// CompletionKind is set when Status is OutcomeCompletionFailed.
	CompletionKind     CompletionErrorKind
	Cards              int
	Dropped            int
	CompletionDuration time.Duration
}

// Observer is notified once per pipeline invocation. It must not block.
type Observer interface {
	GenerationFinished(ctx context.Context, outcome Outcome)
}

// Result is the successful output of a pipeline invocation.
type Result struct {
	// RequestID correlates the diagnostic events of one invocation.
	RequestID uuid.UUID
	// Cards holds the validated flashcards in reply order. It may be empty.
	Cards domain.FlashcardSet
	// Dropped counts candidates rejected by validation.
	Dropped int
	// Candidates counts the candidates recovered from the reply.
	Candidates int
}

// Pipeline orchestrates prompt construction, completion, parsing and
// validation. It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	client    CompletionClient
	prompts   *PromptBuilder
	extractor TextExtractor
	observer  Observer
	logger    *slog.Logger
}

// PipelineOption customizes a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger used for diagnostic events.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPromptBuilder replaces the default PromptBuilder.
func WithPromptBuilder(builder *PromptBuilder) PipelineOption {
	return func(p *Pipeline) {
		if builder != nil {
			p.prompts = builder
		}
	}
}

// WithExtractor enables GenerateFromDocument.
func WithExtractor(extractor TextExtractor) PipelineOption {
	return func(p *Pipeline) {
		p.extractor = extractor
	}
}

// WithObserver registers an observer for invocation outcomes.
func WithObserver(observer Observer) PipelineOption {
	return func(p *Pipeline) {
		p.observer = observer
	}
}

// NewPipeline creates a Pipeline around client.
func NewPipeline(client CompletionClient, opts ...PipelineOption) (*Pipeline, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	p := &Pipeline{
		client:  client,
		prompts: NewPromptBuilder(""),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// GenerateFlashcards produces validated flashcards from document text.
//
// ErrEmptyInput and *CompletionError abort the invocation and are returned
// unchanged. An unparseable reply is returned as *ParseError. A reply whose
// candidates are all invalid is a success with an empty set; Result.Dropped
// reports how many were rejected.
func (p *Pipeline) GenerateFlashcards(ctx context.Context, text string) (*Result, error) {
	requestID := uuid.New()
	log := p.logger.With("request_id", requestID.String())

	log.InfoContext(ctx, "flashcard generation requested", "text_length", len(text))

	return p.generate(ctx, log, requestID, text)
}

// GenerateFromDocument extracts text from document bytes and then behaves
// like GenerateFlashcards. Extraction failures are returned as
// *ExtractionError and no completion call is made.
func (p *Pipeline) GenerateFromDocument(ctx context.Context, data []byte) (*Result, error) {
	requestID := uuid.New()
	log := p.logger.With("request_id", requestID.String())

	log.InfoContext(ctx, "flashcard generation requested from document", "document_bytes", len(data))

	if p.extractor == nil {
		return nil, ErrNoExtractor
	}

	text, err := p.extractor.ExtractText(ctx, data)
	if err != nil {
		var extractErr *ExtractionError
		if !errors.As(err, &extractErr) {
			err = &ExtractionError{Err: err}
		}
		log.WarnContext(ctx, "document text extraction failed", "error", redact.Error(err))
		p.observe(ctx, Outcome{Status: OutcomeExtractionFailed})
		return nil, err
	}

	return p.generate(ctx, log, requestID, text)
}

func (p *Pipeline) generate(
	ctx context.Context,
	log *slog.Logger,
	requestID uuid.UUID,
	text string,
) (*Result, error) {
	req, err := p.prompts.Build(text)
	if err != nil {
		log.InfoContext(ctx, "rejected empty document text")
		p.observe(ctx, Outcome{Status: OutcomeEmptyInput})
		return nil, err
	}

	started := time.Now()
	reply, err := p.client.Complete(ctx, req)
	elapsed := time.Since(started)
	if err != nil {
		outcome := Outcome{Status: OutcomeCompletionFailed, CompletionDuration: elapsed}
		var completionErr *CompletionError
		if errors.As(err, &completionErr) {
			outcome.CompletionKind = completionErr.Kind
		}
		log.ErrorContext(ctx, "completion failed",
			"kind", outcome.CompletionKind,
			"duration_ms", elapsed.Milliseconds(),
			"error", redact.Error(err))
		p.observe(ctx, outcome)
		return nil, err
	}

	log.DebugContext(ctx, "completion received",
		"reply_length", len(reply),
		"duration_ms", elapsed.Milliseconds())

	candidates, err := ParseReply(reply)
	if err != nil {
		log.WarnContext(ctx, "completion reply unparseable",
			"error", err,
			"raw_reply", redact.String(truncate(reply, maxLoggedReply)))
		p.observe(ctx, Outcome{Status: OutcomeParseFailed, CompletionDuration: elapsed})
		return nil, err
	}

	cards, dropped := ValidateCandidates(candidates)
	if dropped > 0 {
		log.WarnContext(ctx, "dropped invalid flashcard candidates",
			"dropped", dropped,
			"candidates", len(candidates))
	}

	log.InfoContext(ctx, "flashcards generated",
		"count", len(cards),
		"dropped", dropped)

	p.observe(ctx, Outcome{
		Status:             OutcomeSuccess,
		Cards:              len(cards),
		Dropped:            dropped,
		CompletionDuration: elapsed,
	})

	return &Result{
		RequestID:  requestID,
		Cards:      cards,
		Dropped:    dropped,
		Candidates: len(candidates),
	}, nil
}

func (p *Pipeline) observe(ctx context.Context, outcome Outcome) {
	if p.observer != nil {
		p.observer.GenerationFinished(ctx, outcome)
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...(truncated)"
}
