package domain

import (
	"fmt"
	"strings"
)

// Flashcard is a validated three-field study record.
// All fields are trimmed and non-empty.
type Flashcard struct {
	Title string `json:"title"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FlashcardSet is an ordered collection of validated flashcards.
type FlashcardSet []Flashcard

// Candidate is a positionally decoded [title, front, back] triple taken from
// a model reply. A nil field means the position was absent or did not hold a
// string.
type Candidate struct {
	Title *string
	Front *string
	Back  *string
}

// NewCandidate builds a Candidate with all three fields present.
func NewCandidate(title, front, back string) Candidate {
	return Candidate{Title: &title, Front: &front, Back: &back}
}

// ToFlashcard trims the candidate's fields and converts it to a Flashcard.
// It returns an error wrapping ErrValidation when any field is missing or
// blank.
func (c Candidate) ToFlashcard() (Flashcard, error) {
	title, err := requireField("title", c.Title)
	if err != nil {
		return Flashcard{}, err
	}
	front, err := requireField("front", c.Front)
	if err != nil {
		return Flashcard{}, err
	}
	back, err := requireField("back", c.Back)
	if err != nil {
		return Flashcard{}, err
	}

	return Flashcard{Title: title, Front: front, Back: back}, nil
}

// Validate checks that every field of the Flashcard is non-empty after trimming.
func (f Flashcard) Validate() error {
	_, err := Candidate{Title: &f.Title, Front: &f.Front, Back: &f.Back}.ToFlashcard()
	return err
}

func requireField(name string, value *string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%w: %s: %w", ErrValidation, name, ErrMissingField)
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s: %w", ErrValidation, name, ErrEmptyField)
	}
	return trimmed, nil
}
