package generation

import "github.com/phrazzld/flashcard-synth/internal/domain"

// ValidateCandidates converts candidates into flashcards, trimming every
// field. Candidates with a missing or blank field are dropped and counted.
// Input order is preserved and the returned set is never nil.
func ValidateCandidates(candidates []domain.Candidate) (domain.FlashcardSet, int) {
	cards := make(domain.FlashcardSet, 0, len(candidates))
	dropped := 0

	for _, candidate := range candidates {
		card, err := candidate.ToFlashcard()
		if err != nil {
			dropped++
			continue
		}
		cards = append(cards, card)
	}

	return cards, dropped
}
