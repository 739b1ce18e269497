// Package api exposes the flashcard generation pipeline over HTTP. It decodes
// text and document uploads, calls the pipeline, and translates pipeline
// errors into status codes and client-safe messages.
package api
