// Package domain contains the core records of the flashcard synthesis
// service: the unvalidated candidates recovered from a model reply and the
// validated flashcards handed back to callers. It has no dependencies on
// transport, configuration, or any external generation service.
package domain
