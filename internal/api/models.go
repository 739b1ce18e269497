package api

import "github.com/phrazzld/flashcard-synth/internal/domain"

// GenerateFlashcardsRequest is the JSON payload for text-based generation.
type GenerateFlashcardsRequest struct {
	Text string `json:"text" validate:"required"`
}

// FlashcardResponse is one generated flashcard.
type FlashcardResponse struct {
	Title string `json:"title"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GenerateFlashcardsResponse is the successful response of the generation
// endpoint. Flashcards is never null; it may be empty when every candidate
// was rejected.
type GenerateFlashcardsResponse struct {
	Flashcards []FlashcardResponse `json:"flashcards"`
	Dropped    int                 `json:"dropped"`
	RequestID  string              `json:"request_id"`
}

func flashcardsToResponse(cards domain.FlashcardSet) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, FlashcardResponse{Title: c.Title, Front: c.Front, Back: c.Back})
	}
	return out
}
