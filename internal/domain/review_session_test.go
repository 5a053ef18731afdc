package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	wordID := uuid.New()
	event := &ReviewEvent{
		Accuracy:   0.8,
		ResponseMs: 3200,
		Difficulty: 3,
		Modality:   ModalityTyping,
		OccurredAt: time.Date(2026, 3, 10, 19, 30, 0, 0, time.UTC),
	}

	session, err := NewReviewSession(userID, wordID, event, 4)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, userID, session.UserID)
	assert.InDelta(t, 0.8, session.Accuracy, 1e-9)
	assert.Equal(t, 4, session.Quality)
	assert.Equal(t, ModalityTyping, session.Modality)
	assert.Equal(t, event.OccurredAt, session.ReviewedAt)
}

func TestNewReviewSession_MissingTimestamp(t *testing.T) {
	t.Parallel()

	event := &ReviewEvent{Accuracy: 1}
	_, err := NewReviewSession(uuid.New(), uuid.New(), event, 5)
	assert.ErrorIs(t, err, ErrMissingEventTime)
}

func TestReviewEventValidate(t *testing.T) {
	t.Parallel()

	event := &ReviewEvent{OccurredAt: time.Now().UTC()}
	assert.NoError(t, event.Validate())

	assert.ErrorIs(t, (&ReviewEvent{}).Validate(), ErrMissingEventTime)
}
