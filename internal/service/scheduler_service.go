package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/domain/srs"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

// SchedulerService plans reviews ahead of time. It projects each word's
// next-review date over a planning horizon, ranks and labels the entries,
// levels the daily load through the engine's distributor, and persists the
// plan as the user's review schedule.
type SchedulerService interface {
	// RebuildSchedule recomputes the user's forward plan from the current
	// review states and replaces the stored schedule from now onward.
	// maxPerDay of 0 uses the engine's configured daily cap.
	RebuildSchedule(
		ctx context.Context,
		userID uuid.UUID,
		maxPerDay int,
		now time.Time,
	) ([]*domain.ReviewSchedule, error)

	// GetSchedule retrieves the stored plan between two times.
	GetSchedule(
		ctx context.Context,
		userID uuid.UUID,
		from, to time.Time,
	) ([]*domain.ReviewSchedule, error)
}

// SchedulerServiceImpl implements the SchedulerService interface
type SchedulerServiceImpl struct {
	stateStore    store.ReviewStateStore
	sessionStore  store.SessionStore
	scheduleStore store.ScheduleStore
	engine        srs.Service
	horizonDays   int
	db            *sql.DB
	logger        *slog.Logger
}

// NewSchedulerService creates a new SchedulerService. horizonDays bounds
// how far ahead plans are generated; values below 1 fall back to 14.
func NewSchedulerService(
	stateStore store.ReviewStateStore,
	sessionStore store.SessionStore,
	scheduleStore store.ScheduleStore,
	engine srs.Service,
	horizonDays int,
	db *sql.DB,
	logger *slog.Logger,
) SchedulerService {
	if engine == nil {
		panic("engine cannot be nil")
	}
	if horizonDays < 1 {
		horizonDays = 14
	}

	return &SchedulerServiceImpl{
		stateStore:    stateStore,
		sessionStore:  sessionStore,
		scheduleStore: scheduleStore,
		engine:        engine,
		horizonDays:   horizonDays,
		db:            db,
		logger:        logger.With("component", "scheduler_service"),
	}
}

// RebuildSchedule recomputes and persists the user's forward plan.
func (s *SchedulerServiceImpl) RebuildSchedule(
	ctx context.Context,
	userID uuid.UUID,
	maxPerDay int,
	now time.Time,
) ([]*domain.ReviewSchedule, error) {
	states, err := s.stateStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load review states",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to load review states: %w", err)
	}

	sessions, err := s.sessionStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load session histories",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to load session histories: %w", err)
	}
	histories := make(map[uuid.UUID][]domain.ReviewSession)
	for _, session := range sessions {
		histories[session.WordID] = append(histories[session.WordID], session)
	}

	plan, err := s.buildPlan(userID, states, histories, now)
	if err != nil {
		return nil, err
	}

	distributed, err := s.engine.DistributeLoad(plan, maxPerDay)
	if err != nil {
		return nil, fmt.Errorf("failed to distribute load: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.scheduleStore.WithTx(tx)

		if err := txStore.DeleteByUser(ctx, userID, startOfDay(now)); err != nil {
			return fmt.Errorf("failed to clear previous plan: %w", err)
		}
		if err := txStore.CreateBatch(ctx, distributed); err != nil {
			return fmt.Errorf("failed to persist plan: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to rebuild schedule",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to rebuild schedule: %w", err)
	}

	s.logger.Info("schedule rebuilt",
		"user_id", userID,
		"entries", len(distributed),
		"horizon_days", s.horizonDays)
	return distributed, nil
}

// GetSchedule retrieves the stored plan between two times.
func (s *SchedulerServiceImpl) GetSchedule(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.ReviewSchedule, error) {
	schedules, err := s.scheduleStore.ListByUser(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("failed to load schedule",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	return schedules, nil
}

// buildPlan converts review states into raw schedule entries within the
// planning horizon. Overdue words are planned for today.
func (s *SchedulerServiceImpl) buildPlan(
	userID uuid.UUID,
	states []*domain.ReviewState,
	histories map[uuid.UUID][]domain.ReviewSession,
	now time.Time,
) ([]*domain.ReviewSchedule, error) {
	horizon := startOfDay(now).AddDate(0, 0, s.horizonDays)

	plan := make([]*domain.ReviewSchedule, 0, len(states))
	for _, state := range states {
		if !state.NextReviewAt.Before(horizon) {
			continue
		}

		scheduledAt := startOfDay(state.NextReviewAt)
		if today := startOfDay(now); scheduledAt.Before(today) {
			scheduledAt = today
		}

		priority, err := s.engine.ComputePriority(state, now)
		if err != nil {
			return nil, fmt.Errorf("failed to compute priority: %w", err)
		}

		reviewType, err := s.engine.ClassifyReviewType(state, histories[state.WordID])
		if err != nil {
			return nil, fmt.Errorf("failed to classify review type: %w", err)
		}

		schedule, err := domain.NewReviewSchedule(userID, state.WordID, scheduledAt, priority, reviewType)
		if err != nil {
			return nil, fmt.Errorf("failed to build schedule entry: %w", err)
		}
		plan = append(plan, schedule)
	}

	return plan, nil
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
