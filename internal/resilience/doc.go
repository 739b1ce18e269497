// Package resilience layers caller-side policies around a
// generation.CompletionClient: bounded retries with exponential backoff for
// transient failures, and an admission gate that caps concurrent calls to the
// generation service. Provider adapters stay single-shot; these wrappers are
// opt-in and composed at startup.
package resilience
