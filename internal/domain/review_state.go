package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for ReviewState
var (
	ErrEmptyStateUserID   = errors.New("review state user ID cannot be empty")
	ErrEmptyStateWordID   = errors.New("review state word ID cannot be empty")
	ErrInvalidInterval    = errors.New("interval must be at least 1 day")
	ErrInvalidEaseFactor  = errors.New("ease factor must be greater than 1.0")
	ErrNegativeReps       = errors.New("repetitions cannot be negative")
	ErrInconsistentCounts = errors.New("correct answers cannot exceed review count")
)

// ReviewState tracks a user's spaced-repetition memory state for a single
// word. It is mutated exclusively by the scheduling engine after each
// review event; mastery level is a derived metric recomputed from history,
// never independently authoritative.
type ReviewState struct {
	UserID                uuid.UUID `json:"user_id"`
	WordID                uuid.UUID `json:"word_id"`
	EaseFactor            float64   `json:"ease_factor"`            // Governs interval growth, typically 1.3-2.5
	IntervalDays          int       `json:"interval_days"`          // Days until next review
	Repetitions           int       `json:"repetitions"`            // Consecutive successful reviews, reset on failure
	MasteryLevel          int       `json:"mastery_level"`          // Derived 0-100 confidence score
	DifficultyAdjustments int       `json:"difficulty_adjustments"` // Count of applied difficulty adjustments
	ReviewCount           int       `json:"review_count"`           // Lifetime review counter
	CorrectAnswers        int       `json:"correct_answers"`        // Lifetime successful review counter
	LastReviewedAt        time.Time `json:"last_reviewed_at"`
	NextReviewAt          time.Time `json:"next_review_at"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// NewReviewState creates the initial memory state for a word that just
// entered a user's learning set. The word is due immediately.
func NewReviewState(userID, wordID uuid.UUID) (*ReviewState, error) {
	now := time.Now().UTC()
	state := &ReviewState{
		UserID:       userID,
		WordID:       wordID,
		EaseFactor:   2.5,
		IntervalDays: 1,
		Repetitions:  0,
		NextReviewAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}

// Validate checks the structural invariants of the state. Numeric values
// that merely drift out of their soft bounds are clamped by the engine,
// not rejected here; Validate only rejects states that are impossible.
func (s *ReviewState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStateUserID
	}

	if s.WordID == uuid.Nil {
		return ErrEmptyStateWordID
	}

	if s.IntervalDays < 1 {
		return ErrInvalidInterval
	}

	if s.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}

	if s.Repetitions < 0 {
		return ErrNegativeReps
	}

	if s.CorrectAnswers > s.ReviewCount {
		return ErrInconsistentCounts
	}

	return nil
}

// Accuracy returns the lifetime accuracy fraction, 0 when nothing has been
// reviewed yet.
func (s *ReviewState) Accuracy() float64 {
	if s.ReviewCount == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.ReviewCount)
}
