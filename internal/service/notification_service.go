package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/domain/srs"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

// NotificationService derives notification advice for a user: when to
// remind them, how often, and with what message. It only advises; actual
// delivery is the caller's concern.
type NotificationService interface {
	// Advise produces the current notification recommendation for a user.
	Advise(ctx context.Context, userID uuid.UUID, now time.Time) (*srs.NotificationAdvice, error)
}

// NotificationServiceImpl implements the NotificationService interface
type NotificationServiceImpl struct {
	userStore  store.UserStore
	statsStore store.StatsStore
	reviews    ReviewService
	engine     srs.Service
	logger     *slog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	userStore store.UserStore,
	statsStore store.StatsStore,
	reviews ReviewService,
	engine srs.Service,
	logger *slog.Logger,
) NotificationService {
	if engine == nil {
		panic("engine cannot be nil")
	}

	return &NotificationServiceImpl{
		userStore:  userStore,
		statsStore: statsStore,
		reviews:    reviews,
		engine:     engine,
		logger:     logger.With("component", "notification_service"),
	}
}

// Advise builds a queue snapshot and runs the engine's advisor over it.
func (s *NotificationServiceImpl) Advise(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*srs.NotificationAdvice, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load user for notification advice",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	stats, err := s.statsStore.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("failed to load stats for notification advice",
				"error", err,
				"user_id", userID)
			return nil, fmt.Errorf("failed to load stats: %w", err)
		}
		stats = domain.NewUserStats(userID)
	}

	// The advisor wants the full backlog, so overdue items are included
	// and the limit is wide open.
	queue, err := s.reviews.GetQueue(ctx, userID, queueSnapshotLimit, true, now)
	if err != nil {
		return nil, err
	}

	advice, err := s.engine.AdviseNotification(queue, stats, user.NotificationTier, now)
	if err != nil {
		return nil, fmt.Errorf("failed to derive notification advice: %w", err)
	}

	s.logger.Debug("notification advice derived",
		"user_id", userID,
		"due_count", advice.Payload.DueCount,
		"daily_count", advice.DailyCount,
		"appropriate_now", advice.AppropriateNow)
	return advice, nil
}

// queueSnapshotLimit bounds the advisor's queue snapshot. It only needs
// enough to count the backlog, not to order it precisely.
const queueSnapshotLimit = 500
