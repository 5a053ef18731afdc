package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexikon-app/lexikon-api/internal/domain/srs"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

func TestGetAdvice(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	notificationService := &mockNotificationService{
		adviseFn: func(ctx context.Context, gotUser uuid.UUID, now time.Time) (*srs.NotificationAdvice, error) {
			assert.Equal(t, userID, gotUser)
			return &srs.NotificationAdvice{
				Hour:           19,
				DailyCount:     2,
				Title:          "Time to review!",
				Payload:        srs.NotificationPayload{DueCount: 6, OverdueCount: 2, Streak: 3},
				AppropriateNow: true,
			}, nil
		},
	}

	handler := NewNotificationHandler(notificationService, nil)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/notifications/advice", nil), userID)
	rec := httptest.NewRecorder()
	handler.GetAdvice(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var advice srs.NotificationAdvice
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&advice))
	assert.Equal(t, 19, advice.Hour)
	assert.Equal(t, 6, advice.Payload.DueCount)
	assert.True(t, advice.AppropriateNow)
}

func TestGetAdvice_UserNotFound(t *testing.T) {
	t.Parallel()

	notificationService := &mockNotificationService{
		adviseFn: func(ctx context.Context, userID uuid.UUID, now time.Time) (*srs.NotificationAdvice, error) {
			return nil, store.ErrUserNotFound
		},
	}

	handler := NewNotificationHandler(notificationService, nil)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/notifications/advice", nil), uuid.New())
	rec := httptest.NewRecorder()
	handler.GetAdvice(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAdvice_Unauthenticated(t *testing.T) {
	t.Parallel()

	handler := NewNotificationHandler(&mockNotificationService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/notifications/advice", nil)
	rec := httptest.NewRecorder()
	handler.GetAdvice(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
