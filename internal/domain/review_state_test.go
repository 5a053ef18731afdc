package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewState(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	wordID := uuid.New()
	state, err := NewReviewState(userID, wordID)
	require.NoError(t, err)

	assert.Equal(t, userID, state.UserID)
	assert.Equal(t, wordID, state.WordID)
	assert.InDelta(t, 2.5, state.EaseFactor, 1e-9)
	assert.Equal(t, 1, state.IntervalDays)
	assert.Equal(t, 0, state.Repetitions)
	// A fresh word is due immediately.
	assert.False(t, state.NextReviewAt.After(state.CreatedAt))
}

func TestReviewStateValidate(t *testing.T) {
	t.Parallel()

	valid := func() *ReviewState {
		return &ReviewState{
			UserID:       uuid.New(),
			WordID:       uuid.New(),
			EaseFactor:   2.0,
			IntervalDays: 6,
			ReviewCount:  10,
		}
	}

	tests := []struct {
		name    string
		mutate  func(s *ReviewState)
		wantErr error
	}{
		{"valid", func(s *ReviewState) {}, nil},
		{"missing user", func(s *ReviewState) { s.UserID = uuid.Nil }, ErrEmptyStateUserID},
		{"missing word", func(s *ReviewState) { s.WordID = uuid.Nil }, ErrEmptyStateWordID},
		{"zero interval", func(s *ReviewState) { s.IntervalDays = 0 }, ErrInvalidInterval},
		{"ease at floor", func(s *ReviewState) { s.EaseFactor = 1.0 }, ErrInvalidEaseFactor},
		{"negative reps", func(s *ReviewState) { s.Repetitions = -1 }, ErrNegativeReps},
		{"correct exceeds total", func(s *ReviewState) { s.CorrectAnswers = 11 }, ErrInconsistentCounts},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := valid()
			tt.mutate(state)

			err := state.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestReviewStateAccuracy(t *testing.T) {
	t.Parallel()

	state := &ReviewState{ReviewCount: 0, CorrectAnswers: 0}
	assert.Zero(t, state.Accuracy())

	state = &ReviewState{ReviewCount: 8, CorrectAnswers: 6}
	assert.InDelta(t, 0.75, state.Accuracy(), 1e-9)
}
