package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/flashcard-synth/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF assembles a single-page PDF showing text in Helvetica, with a
// correct cross-reference table.
func buildPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func TestDetectMIME(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MIMEPDF, DetectMIME(buildPDF("hello")))
	assert.Equal(t, MIMEText, DetectMIME([]byte("The capital of France is Paris.")))
	assert.Equal(t, MIMEText, DetectMIME([]byte("<html><body>Paris</body></html>")))
	assert.Equal(t, "image/png", DetectMIME([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")))
}

func TestExtractTextPlain(t *testing.T) {
	t.Parallel()

	text, err := New(nil).ExtractText(context.Background(), []byte("The capital of France is Paris."))

	require.NoError(t, err)
	assert.Equal(t, "The capital of France is Paris.", text)
}

func TestExtractTextPDF(t *testing.T) {
	t.Parallel()

	text, err := New(nil).ExtractText(context.Background(), buildPDF("The capital of France is Paris"))

	require.NoError(t, err)
	assert.Contains(t, text, "Paris")
}

func TestExtractTextFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty", nil, ErrEmptyDocument},
		{"unsupported type", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), ErrUnsupportedType},
		{"truncated pdf", []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog"), ErrMalformedPDF},
		{"blank text", []byte("   \n\t  "), ErrNoText},
		{"pdf without text", buildPDF(""), ErrNoText},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			text, err := New(nil).ExtractText(context.Background(), tc.data)

			assert.Empty(t, text)
			var extractErr *generation.ExtractionError
			require.True(t, errors.As(err, &extractErr), "got %T: %v", err, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestExtractTextCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).ExtractText(ctx, []byte("text"))

	var extractErr *generation.ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.ErrorIs(t, err, context.Canceled)
}
