// Package gemini provides an implementation of the generation.CompletionClient
// interface that uses Google's Gemini API.
//
// This package is an infrastructure adapter: it translates a
// generation.CompletionRequest into a GenerateContent call, with the system
// prompt sent as the system instruction and the document text as the user
// content, and returns the concatenated text parts of the first candidate.
//
// Failures are reported as *generation.CompletionError:
//   - HTTP 401/403 are classified as auth failures
//   - HTTP 429 is classified as rate limiting
//   - timeouts, cancellations, 5xx and transport errors are network failures
//   - empty candidates, safety blocks and other 4xx are invalid responses
//
// The adapter never retries. Retry and admission control are layered on top
// by internal/resilience.
package gemini
