// Package testutils provides helpers shared by the package tests: an
// in-memory slog handler for asserting on structured log output and small
// HTTP helpers for exercising handlers through a real test server.
//
//	log, logs := testutils.NewTestLogger()
//	// ... run code that logs through log ...
//	entries := logs.EntriesWithMessage("flashcards generated")
//
//	server := testutils.CreateTestServer(t, router)
//	resp := testutils.PostRequest(t, server, "/generate-flashcards", "text/plain", strings.NewReader("..."))
//	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "empty")
package testutils
