package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewType labels why a review is being scheduled. It is recomputed at
// each scheduling decision, never persisted as a state machine.
type ReviewType string

const (
	// ReviewTypeSpacedRepetition is the default periodic review.
	ReviewTypeSpacedRepetition ReviewType = "spaced_repetition"

	// ReviewTypeDifficultyAdjustment checks whether the item's difficulty
	// should be raised or lowered.
	ReviewTypeDifficultyAdjustment ReviewType = "difficulty_adjustment"

	// ReviewTypeMasteryCheck confirms a well-known item is still retained.
	ReviewTypeMasteryCheck ReviewType = "mastery_check"
)

// IsValid reports whether the review type is one of the known labels.
func (t ReviewType) IsValid() bool {
	switch t {
	case ReviewTypeSpacedRepetition, ReviewTypeDifficultyAdjustment, ReviewTypeMasteryCheck:
		return true
	default:
		return false
	}
}

// Common validation errors for ReviewSchedule
var (
	ErrEmptyScheduleUserID = errors.New("schedule user ID cannot be empty")
	ErrEmptyScheduleWordID = errors.New("schedule word ID cannot be empty")
	ErrInvalidPriority     = errors.New("priority must be between 1 and 10")
)

// ReviewSchedule is one planned review: which word, when, how urgent and
// why. Created by the scheduler; only the load distributor may revise its
// date and priority when a day overflows.
type ReviewSchedule struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	WordID      uuid.UUID  `json:"word_id"`
	ScheduledAt time.Time  `json:"scheduled_at"` // Calendar date, midnight UTC
	Priority    int        `json:"priority"`     // 1-10, higher is more urgent
	ReviewType  ReviewType `json:"review_type"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewReviewSchedule creates a schedule entry for the given word and date.
func NewReviewSchedule(
	userID, wordID uuid.UUID,
	scheduledAt time.Time,
	priority int,
	reviewType ReviewType,
) (*ReviewSchedule, error) {
	schedule := &ReviewSchedule{
		ID:          uuid.New(),
		UserID:      userID,
		WordID:      wordID,
		ScheduledAt: scheduledAt,
		Priority:    priority,
		ReviewType:  reviewType,
		CreatedAt:   time.Now().UTC(),
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	return schedule, nil
}

// Validate checks if the ReviewSchedule has valid data.
func (s *ReviewSchedule) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyScheduleUserID
	}

	if s.WordID == uuid.Nil {
		return ErrEmptyScheduleWordID
	}

	if s.Priority < 1 || s.Priority > 10 {
		return ErrInvalidPriority
	}

	if !s.ReviewType.IsValid() {
		return ErrInvalidReviewType
	}

	return nil
}
