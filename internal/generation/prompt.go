package generation

import (
	"fmt"
	"os"
	"strings"
)

// DefaultSystemPrompt instructs the generation service to reply with a JSON
// array of [Title, Front, Back] triples.
const DefaultSystemPrompt = `You are an assistant that creates study flashcards.

Read the document supplied by the user and summarize its key ideas as flashcards.
Reply with a JSON array and nothing else. Each element is itself an array of
exactly three strings: [Title, Front, Back].
  - Title: a short topic label for the card.
  - Front: a question or prompt.
  - Back: the answer.

Include at least two cards with relevant facts that are not stated explicitly
in the document.

Example:
[["Photosynthesis", "What gas do plants absorb during photosynthesis?", "Carbon dioxide"]]`

// CompletionRequest is the immutable input handed to a CompletionClient.
type CompletionRequest struct {
	SystemPrompt string
	UserContent  string
}

// PromptBuilder composes the fixed instruction prompt and document text into
// a CompletionRequest.
type PromptBuilder struct {
	systemPrompt string
}

// NewPromptBuilder returns a PromptBuilder using systemPrompt, or
// DefaultSystemPrompt when systemPrompt is blank.
func NewPromptBuilder(systemPrompt string) *PromptBuilder {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &PromptBuilder{systemPrompt: systemPrompt}
}

// LoadPromptBuilder reads a system prompt override from path. An empty path
// yields the default prompt.
func LoadPromptBuilder(path string) (*PromptBuilder, error) {
	if path == "" {
		return NewPromptBuilder(""), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read system prompt from %s: %v",
			ErrInvalidConfig, path, err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil, fmt.Errorf("%w: system prompt file %s is empty", ErrInvalidConfig, path)
	}

	return NewPromptBuilder(string(content)), nil
}

// SystemPrompt returns the instruction text used for every request.
func (b *PromptBuilder) SystemPrompt() string {
	return b.systemPrompt
}

// Build returns the CompletionRequest for text. The text is passed through
// unmodified; it fails with ErrEmptyInput when text is blank.
func (b *PromptBuilder) Build(text string) (CompletionRequest, error) {
	if strings.TrimSpace(text) == "" {
		return CompletionRequest{}, ErrEmptyInput
	}

	return CompletionRequest{
		SystemPrompt: b.systemPrompt,
		UserContent:  text,
	}, nil
}
