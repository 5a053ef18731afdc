package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for ReviewSession
var (
	ErrEmptySessionUserID = errors.New("review session user ID cannot be empty")
	ErrEmptySessionWordID = errors.New("review session word ID cannot be empty")
)

// ReviewSession is one archived review attempt. Sessions form the recent
// history the engine consumes for mastery estimation and review-type
// classification, ordered most recent last.
type ReviewSession struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	WordID     uuid.UUID `json:"word_id"`
	Accuracy   float64   `json:"accuracy"`
	ResponseMs float64   `json:"response_ms"`
	Quality    int       `json:"quality"`
	Modality   Modality  `json:"modality"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// NewReviewSession archives a review event together with its estimated
// quality score.
func NewReviewSession(userID, wordID uuid.UUID, event *ReviewEvent, quality int) (*ReviewSession, error) {
	session := &ReviewSession{
		ID:         uuid.New(),
		UserID:     userID,
		WordID:     wordID,
		Accuracy:   event.Accuracy,
		ResponseMs: event.ResponseMs,
		Quality:    quality,
		Modality:   event.Modality,
		ReviewedAt: event.OccurredAt,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the ReviewSession has valid data.
func (s *ReviewSession) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptySessionUserID
	}

	if s.WordID == uuid.Nil {
		return ErrEmptySessionWordID
	}

	if s.ReviewedAt.IsZero() {
		return ErrMissingEventTime
	}

	return nil
}
