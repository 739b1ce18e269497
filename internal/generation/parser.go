package generation

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/phrazzld/flashcard-synth/internal/domain"
)

// errNoBracket is reported when a reply holds no recoverable JSON array.
var errNoBracket = errors.New("no balanced JSON array found in reply")

// ParseReply recovers flashcard candidates from a raw completion reply.
//
// The whole reply is first decoded strictly as a JSON array. If that fails,
// the first '[' and its balancing ']' are located (brackets inside string
// literals are ignored) and that substring is decoded instead, which recovers
// arrays wrapped in prose or markdown code fences. A reply that still cannot
// be decoded, or decodes to an empty array, yields a *ParseError carrying the
// raw text.
//
// Each array element becomes one Candidate by position. Malformed elements
// produce candidates with missing fields rather than failing the parse.
func ParseReply(raw string) ([]domain.Candidate, error) {
	elements, err := decodeArray(raw)
	if err != nil {
		start, end, ok := findBalancedArray(raw)
		if !ok {
			return nil, &ParseError{Raw: raw, Err: errors.Join(err, errNoBracket)}
		}
		elements, err = decodeArray(raw[start : end+1])
		if err != nil {
			return nil, &ParseError{Raw: raw, Err: err}
		}
	}

	if len(elements) == 0 {
		return nil, &ParseError{Raw: raw, Err: ErrNoCandidates}
	}

	candidates := make([]domain.Candidate, len(elements))
	for i, element := range elements {
		candidates[i] = decodeCandidate(element)
	}

	return candidates, nil
}

// decodeArray strictly decodes s as a JSON array, keeping elements raw.
func decodeArray(s string) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, ErrNotArray
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &elements); err != nil {
		return nil, err
	}
	return elements, nil
}

// decodeCandidate destructures one element as [title, front, back].
// Positions beyond the third are ignored.
func decodeCandidate(element json.RawMessage) domain.Candidate {
	var fields []json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil {
		return domain.Candidate{}
	}

	return domain.Candidate{
		Title: stringAt(fields, 0),
		Front: stringAt(fields, 1),
		Back:  stringAt(fields, 2),
	}
}

// stringAt returns the string at position i, or nil when the position is
// absent or holds a non-string value (including null).
func stringAt(fields []json.RawMessage, i int) *string {
	if i >= len(fields) {
		return nil
	}

	var value any
	if err := json.Unmarshal(fields[i], &value); err != nil {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return nil
	}
	return &s
}

// findBalancedArray returns the byte offsets of the first '[' in s and the
// ']' that closes it. Brackets inside JSON string literals do not count
// towards the depth.
func findBalancedArray(s string) (start, end int, ok bool) {
	start = strings.IndexByte(s, '[')
	if start < 0 {
		return 0, 0, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return start, i, true
			}
		}
	}

	return 0, 0, false
}
