package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// PreferencesRequest defines the payload for the preferences endpoint.
// Empty fields are left unchanged.
type PreferencesRequest struct {
	NotificationTier  string `json:"notification_tier"  validate:"omitempty,oneof=low medium high"`
	PreferredModality string `json:"preferred_modality" validate:"omitempty,oneof=flashcard typing listening multiple_choice"`
}

// UserResponse represents the response data for a user profile.
type UserResponse struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	NotificationTier  string `json:"notification_tier"`
	PreferredModality string `json:"preferred_modality"`
}

// WordRequest defines the payload for word create and update endpoints.
type WordRequest struct {
	Term        string `json:"term"        validate:"required,max=255"`
	Translation string `json:"translation" validate:"max=255"`
	Notes       string `json:"notes"       validate:"max=2000"`
}

// WordResponse represents the response data for a vocabulary word.
type WordResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Term        string    `json:"term"`
	Translation string    `json:"translation"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubmitReviewRequest defines the payload for submitting a review.
type SubmitReviewRequest struct {
	Accuracy   float64 `json:"accuracy"    validate:"gte=0,lte=1"`
	ResponseMs float64 `json:"response_ms" validate:"gte=0"`
	Difficulty int     `json:"difficulty"  validate:"gte=1,lte=5"`
	Modality   string  `json:"modality"    validate:"omitempty,oneof=flashcard typing listening multiple_choice"`
}

// ReviewStateResponse represents the response data for a word's memory state.
type ReviewStateResponse struct {
	UserID         string    `json:"user_id"`
	WordID         string    `json:"word_id"`
	EaseFactor     float64   `json:"ease_factor"`
	IntervalDays   int       `json:"interval_days"`
	Repetitions    int       `json:"repetitions"`
	MasteryLevel   int       `json:"mastery_level"`
	ReviewCount    int       `json:"review_count"`
	CorrectAnswers int       `json:"correct_answers"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	NextReviewAt   time.Time `json:"next_review_at"`
}

// SubmitReviewResponse wraps the updated state with the engine's derived
// signals for the submitted review.
type SubmitReviewResponse struct {
	State      ReviewStateResponse `json:"state"`
	Quality    int                 `json:"quality"`
	ReviewType string              `json:"review_type"`
}

// PostponeRequest defines the payload for postponing a word's review.
type PostponeRequest struct {
	Days int `json:"days" validate:"required,gte=1,lte=365"`
}

// RebalanceRequest defines the payload for the schedule rebalance endpoint.
type RebalanceRequest struct {
	MaxPerDay int `json:"max_per_day" validate:"omitempty,gte=1,lte=500"`
}

// ScheduleResponse represents one planned review entry.
type ScheduleResponse struct {
	ID          string    `json:"id"`
	WordID      string    `json:"word_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Priority    int       `json:"priority"`
	ReviewType  string    `json:"review_type"`
}

// userToResponse converts a domain.User to a UserResponse
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:                user.ID.String(),
		Email:             user.Email,
		NotificationTier:  string(user.NotificationTier),
		PreferredModality: string(user.PreferredModality),
	}
}

// wordToResponse converts a domain.Word to a WordResponse
func wordToResponse(word *domain.Word) WordResponse {
	return WordResponse{
		ID:          word.ID.String(),
		UserID:      word.UserID.String(),
		Term:        word.Term,
		Translation: word.Translation,
		Notes:       word.Notes,
		CreatedAt:   word.CreatedAt,
		UpdatedAt:   word.UpdatedAt,
	}
}

// stateToResponse converts a domain.ReviewState to a ReviewStateResponse
func stateToResponse(state *domain.ReviewState) ReviewStateResponse {
	return ReviewStateResponse{
		UserID:         state.UserID.String(),
		WordID:         state.WordID.String(),
		EaseFactor:     state.EaseFactor,
		IntervalDays:   state.IntervalDays,
		Repetitions:    state.Repetitions,
		MasteryLevel:   state.MasteryLevel,
		ReviewCount:    state.ReviewCount,
		CorrectAnswers: state.CorrectAnswers,
		LastReviewedAt: state.LastReviewedAt,
		NextReviewAt:   state.NextReviewAt,
	}
}

// scheduleToResponse converts a domain.ReviewSchedule to a ScheduleResponse
func scheduleToResponse(schedule *domain.ReviewSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:          schedule.ID.String(),
		WordID:      schedule.WordID.String(),
		ScheduledAt: schedule.ScheduledAt,
		Priority:    schedule.Priority,
		ReviewType:  string(schedule.ReviewType),
	}
}
