package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserStats aggregates a user's lifetime study behavior. The engine's
// personalization layer and the notification advisor read these; they are
// maintained by the review service as sessions are recorded.
type UserStats struct {
	UserID            uuid.UUID `json:"user_id"`
	TotalReviews      int       `json:"total_reviews"`
	CorrectReviews    int       `json:"correct_reviews"`
	AvgResponseMs     float64   `json:"avg_response_ms"`
	PreferredModality Modality  `json:"preferred_modality"`
	CurrentStreak     int       `json:"current_streak"` // Consecutive days with at least one review
	LastStudyHour     int       `json:"last_study_hour"` // Hour of day of last study, -1 when unknown
	LastStudiedAt     time.Time `json:"last_studied_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewUserStats returns empty aggregates for a fresh user.
func NewUserStats(userID uuid.UUID) *UserStats {
	return &UserStats{
		UserID:            userID,
		PreferredModality: ModalityFlashcard,
		LastStudyHour:     -1,
		UpdatedAt:         time.Now().UTC(),
	}
}

// Accuracy returns the lifetime accuracy fraction, 0 when the user has not
// reviewed anything yet.
func (s *UserStats) Accuracy() float64 {
	if s.TotalReviews == 0 {
		return 0
	}
	return float64(s.CorrectReviews) / float64(s.TotalReviews)
}

// HasHistory reports whether any study behavior has been recorded.
func (s *UserStats) HasHistory() bool {
	return s.TotalReviews > 0 && s.LastStudyHour >= 0
}
