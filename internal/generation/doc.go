// Package generation turns document text into validated study flashcards.
//
// It owns the synthesis pipeline: a PromptBuilder composes the instruction
// prompt and the document into a CompletionRequest, an injected
// CompletionClient (the external AI/LLM service) returns free-form reply
// text, ParseReply recovers candidate [title, front, back] triples from that
// untrusted reply, and ValidateCandidates keeps only well-formed flashcards.
// Pipeline sequences these steps and reports failures through the error
// taxonomy in errors.go.
//
// Provider adapters (OpenAI, Gemini, Anthropic) live under internal/platform
// and satisfy the CompletionClient interface without this package knowing
// about any specific service.
package generation
