package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Word
var (
	ErrEmptyWordID     = errors.New("word ID cannot be empty")
	ErrEmptyWordUserID = errors.New("word user ID cannot be empty")
	ErrEmptyTerm       = errors.New("word term cannot be empty")
)

// Word is a single learnable vocabulary item owned by a user. The platform
// treats it as an opaque unit: content modeling (roots, conjugations,
// example generation) is out of scope for the scheduler.
type Word struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Term        string    `json:"term"`
	Translation string    `json:"translation"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewWord creates a new Word owned by the given user.
func NewWord(userID uuid.UUID, term, translation, notes string) (*Word, error) {
	now := time.Now().UTC()
	word := &Word{
		ID:          uuid.New(),
		UserID:      userID,
		Term:        term,
		Translation: translation,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyWordID
	}

	if w.UserID == uuid.Nil {
		return ErrEmptyWordUserID
	}

	if w.Term == "" {
		return ErrEmptyTerm
	}

	return nil
}
