// Package extract decodes uploaded documents into plain text for the
// generation pipeline. The document type is sniffed from content, never
// trusted from the client: PDFs are read with ledongthuc/pdf and text/* is
// passed through.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/phrazzld/flashcard-synth/internal/generation"
)

// Extraction failure reasons. They are always wrapped in
// *generation.ExtractionError.
var (
	ErrEmptyDocument   = errors.New("document is empty")
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrMalformedPDF    = errors.New("malformed PDF")
	ErrNoText          = errors.New("document contains no extractable text")
	ErrInvalidEncoding = errors.New("text document is not valid UTF-8")
)

// MIME types accepted by the extractor.
const (
	MIMEPDF  = "application/pdf"
	MIMEText = "text/plain"
)

// Extractor implements generation.TextExtractor.
type Extractor struct {
	logger *slog.Logger
}

var _ generation.TextExtractor = (*Extractor)(nil)

// New creates an Extractor. A nil logger discards diagnostics.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{logger: logger}
}

// DetectMIME returns the sniffed MIME type of data without parameters.
// Text formats such as HTML, CSV and JSON report as text/plain.
func DetectMIME(data []byte) string {
	detected := mimetype.Detect(data)
	for mt := detected; mt != nil; mt = mt.Parent() {
		if mt.Is(MIMEPDF) {
			return MIMEPDF
		}
		if mt.Is(MIMEText) {
			return MIMEText
		}
	}
	return strings.SplitN(detected.String(), ";", 2)[0]
}

// ExtractText returns the plain text of a PDF or text document.
func (e *Extractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &generation.ExtractionError{Err: err}
	}
	if len(data) == 0 {
		return "", &generation.ExtractionError{Err: ErrEmptyDocument}
	}

	mime := DetectMIME(data)
	e.logger.DebugContext(ctx, "extracting document text",
		"mime_type", mime,
		"document_bytes", len(data))

	var (
		text string
		err  error
	)
	switch mime {
	case MIMEPDF:
		text, err = pdfText(data)
	case MIMEText:
		text, err = plainText(data)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
	if err != nil {
		return "", &generation.ExtractionError{Err: err}
	}

	if strings.TrimSpace(text) == "" {
		return "", &generation.ExtractionError{Err: ErrNoText}
	}

	e.logger.DebugContext(ctx, "document text extracted",
		"mime_type", mime,
		"text_length", len(text))

	return text, nil
}

func plainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}

// pdfText concatenates the plain text of every page. The PDF reader panics on
// some corrupt inputs; those are reported as ErrMalformedPDF.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrMalformedPDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}

	return buf.String(), nil
}
