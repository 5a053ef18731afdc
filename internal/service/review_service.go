package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/domain/srs"
	"github.com/lexikon-app/lexikon-api/internal/events"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

// ReviewResult is the outcome of one submitted review: the updated memory
// state plus the engine's derived signals.
type ReviewResult struct {
	State      *domain.ReviewState `json:"state"`
	Quality    int                 `json:"quality"`
	ReviewType domain.ReviewType   `json:"review_type"`
}

// ReviewService processes review submissions and builds review queues. It
// is the only writer of review states: each submission runs in one
// transaction holding a row lock on the state, so concurrent submissions
// for the same word serialize instead of clobbering each other.
type ReviewService interface {
	// SubmitReview applies one review event to a word's memory state,
	// archives the session, and updates the user's study statistics.
	// A word reviewed for the first time gets its state created on the fly.
	SubmitReview(
		ctx context.Context,
		userID, wordID uuid.UUID,
		event *domain.ReviewEvent,
	) (*ReviewResult, error)

	// GetQueue builds the user's current review queue.
	GetQueue(
		ctx context.Context,
		userID uuid.UUID,
		limit int,
		includeOverdue bool,
		now time.Time,
	) ([]srs.QueueItem, error)

	// NextWord returns the highest-priority due word.
	// Returns ErrNothingDue when the queue is empty.
	NextWord(ctx context.Context, userID uuid.UUID, now time.Time) (*srs.QueueItem, error)

	// PostponeWord pushes a word's next review forward by the given number
	// of days without touching its memory model.
	PostponeWord(
		ctx context.Context,
		userID, wordID uuid.UUID,
		days int,
		now time.Time,
	) (*domain.ReviewState, error)
}

// ReviewServiceImpl implements the ReviewService interface
type ReviewServiceImpl struct {
	wordStore    store.WordStore
	stateStore   store.ReviewStateStore
	sessionStore store.SessionStore
	statsStore   store.StatsStore
	engine       srs.Service
	emitter      events.EventEmitter
	db           *sql.DB
	logger       *slog.Logger
}

// NewReviewService creates a new ReviewService. The emitter may be nil,
// in which case no background rebuilds are requested.
func NewReviewService(
	wordStore store.WordStore,
	stateStore store.ReviewStateStore,
	sessionStore store.SessionStore,
	statsStore store.StatsStore,
	engine srs.Service,
	emitter events.EventEmitter,
	db *sql.DB,
	logger *slog.Logger,
) ReviewService {
	if engine == nil {
		panic("engine cannot be nil")
	}

	return &ReviewServiceImpl{
		wordStore:    wordStore,
		stateStore:   stateStore,
		sessionStore: sessionStore,
		statsStore:   statsStore,
		engine:       engine,
		emitter:      emitter,
		db:           db,
		logger:       logger.With("component", "review_service"),
	}
}

// SubmitReview applies one review event inside a single transaction.
func (s *ReviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID, wordID uuid.UUID,
	event *domain.ReviewEvent,
) (*ReviewResult, error) {
	if event == nil {
		return nil, srs.ErrNilEvent
	}

	now := event.OccurredAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var result *ReviewResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		stateStore := s.stateStore.WithTx(tx)
		sessionStore := s.sessionStore.WithTx(tx)
		statsStore := s.statsStore.WithTx(tx)

		// Lock the state row for the duration of the transaction. A word
		// without a state yet enters the flow here, after an ownership
		// check against the word itself.
		stateIsNew := false
		state, err := stateStore.GetForUpdate(ctx, userID, wordID)
		if err != nil {
			if !errors.Is(err, store.ErrReviewStateNotFound) {
				return fmt.Errorf("failed to get review state: %w", err)
			}

			word, err := s.wordStore.WithTx(tx).GetByID(ctx, wordID)
			if err != nil {
				return fmt.Errorf("failed to get word: %w", err)
			}
			if word.UserID != userID {
				return ErrNotOwned
			}

			state, err = domain.NewReviewState(userID, wordID)
			if err != nil {
				return fmt.Errorf("failed to create review state: %w", err)
			}
			stateIsNew = true
		}

		stats, err := statsStore.GetForUpdate(ctx, userID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("failed to get user stats: %w", err)
			}
			stats = domain.NewUserStats(userID)
		}

		personalization := s.engine.PersonalizationFactor(stats, event.Modality)

		next, err := s.engine.ApplyReviewEvent(state, event, personalization, now)
		if err != nil {
			return fmt.Errorf("failed to apply review: %w", err)
		}

		quality, err := s.engine.EstimateQuality(event)
		if err != nil {
			return fmt.Errorf("failed to estimate quality: %w", err)
		}

		session, err := domain.NewReviewSession(userID, wordID, event, quality)
		if err != nil {
			return fmt.Errorf("failed to build session record: %w", err)
		}
		if err := sessionStore.Create(ctx, session); err != nil {
			return fmt.Errorf("failed to archive session: %w", err)
		}

		// Mastery is derived from the full history including the session
		// just archived.
		history, err := sessionStore.ListByWord(ctx, userID, wordID, 0)
		if err != nil {
			return fmt.Errorf("failed to load session history: %w", err)
		}
		mastery, err := s.engine.EstimateMastery(next, history)
		if err != nil {
			return fmt.Errorf("failed to estimate mastery: %w", err)
		}
		next.MasteryLevel = mastery

		if stateIsNew {
			err = stateStore.Create(ctx, next)
		} else {
			err = stateStore.Update(ctx, next)
		}
		if err != nil {
			return fmt.Errorf("failed to persist review state: %w", err)
		}

		applyReviewToStats(stats, event, quality, now)
		if err := statsStore.Upsert(ctx, stats); err != nil {
			return fmt.Errorf("failed to persist user stats: %w", err)
		}

		reviewType, err := s.engine.ClassifyReviewType(next, history)
		if err != nil {
			return fmt.Errorf("failed to classify review type: %w", err)
		}

		result = &ReviewResult{
			State:      next,
			Quality:    quality,
			ReviewType: reviewType,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrNotOwned) || errors.Is(err, store.ErrWordNotFound) {
			return nil, err
		}
		s.logger.Error("failed to submit review",
			"error", err,
			"user_id", userID,
			"word_id", wordID)
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	s.logger.Debug("review submitted",
		"user_id", userID,
		"word_id", wordID,
		"quality", result.Quality,
		"interval_days", result.State.IntervalDays,
		"mastery", result.State.MasteryLevel,
		slog.Time("next_review_at", result.State.NextReviewAt))

	s.requestScheduleRebuild(ctx, userID)

	return result, nil
}

// requestScheduleRebuild asks the background workers to refresh the
// user's forward plan after a state change. Best effort: the next
// review or an explicit rebalance regenerates the plan anyway.
func (s *ReviewServiceImpl) requestScheduleRebuild(ctx context.Context, userID uuid.UUID) {
	if s.emitter == nil {
		return
	}

	// Type string literal rather than the task package constant to avoid
	// a circular import.
	event, err := events.NewTaskRequestEvent("schedule_rebuild", struct {
		UserID uuid.UUID `json:"user_id"`
	}{UserID: userID})
	if err != nil {
		s.logger.Error("failed to build rebuild event", "error", err, "user_id", userID)
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit rebuild event", "error", err, "user_id", userID)
	}
}

// GetQueue builds the user's current review queue from due states and
// their session histories.
func (s *ReviewServiceImpl) GetQueue(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
	includeOverdue bool,
	now time.Time,
) ([]srs.QueueItem, error) {
	if limit <= 0 {
		limit = s.engine.Params().DailyReviewCap
	}

	states, err := s.stateStore.ListDue(ctx, userID, now)
	if err != nil {
		s.logger.Error("failed to load due states",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to load due states: %w", err)
	}

	histories, err := s.loadHistories(ctx, userID)
	if err != nil {
		return nil, err
	}

	queue, err := s.engine.BuildQueue(states, histories, now, limit, includeOverdue)
	if err != nil {
		return nil, fmt.Errorf("failed to build queue: %w", err)
	}

	s.logger.Debug("review queue built",
		"user_id", userID,
		"due_states", len(states),
		"queue_size", len(queue))
	return queue, nil
}

// NextWord returns the single highest-priority due item.
func (s *ReviewServiceImpl) NextWord(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*srs.QueueItem, error) {
	queue, err := s.GetQueue(ctx, userID, 1, true, now)
	if err != nil {
		return nil, err
	}
	if len(queue) == 0 {
		return nil, ErrNothingDue
	}
	return &queue[0], nil
}

// PostponeWord pushes a word's next review forward by days.
func (s *ReviewServiceImpl) PostponeWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
	days int,
	now time.Time,
) (*domain.ReviewState, error) {
	var postponed *domain.ReviewState
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		stateStore := s.stateStore.WithTx(tx)

		state, err := stateStore.GetForUpdate(ctx, userID, wordID)
		if err != nil {
			return fmt.Errorf("failed to get review state: %w", err)
		}

		next, err := s.engine.PostponeReview(state, days, now)
		if err != nil {
			return err
		}

		if err := stateStore.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to persist postponed state: %w", err)
		}

		postponed = next
		return nil
	})
	if err != nil {
		if errors.Is(err, srs.ErrInvalidDays) || errors.Is(err, store.ErrReviewStateNotFound) {
			return nil, err
		}
		s.logger.Error("failed to postpone review",
			"error", err,
			"user_id", userID,
			"word_id", wordID)
		return nil, fmt.Errorf("failed to postpone review: %w", err)
	}

	s.logger.Info("review postponed",
		"user_id", userID,
		"word_id", wordID,
		"days", days,
		slog.Time("next_review_at", postponed.NextReviewAt))

	s.requestScheduleRebuild(ctx, userID)

	return postponed, nil
}

// loadHistories loads a user's full session archive grouped per word,
// chronological order preserved.
func (s *ReviewServiceImpl) loadHistories(
	ctx context.Context,
	userID uuid.UUID,
) (map[uuid.UUID][]domain.ReviewSession, error) {
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
	return histories, nil
}

// applyReviewToStats folds one review into the user's lifetime aggregates.
func applyReviewToStats(stats *domain.UserStats, event *domain.ReviewEvent, quality int, now time.Time) {
	stats.TotalReviews++
	if quality >= srs.PassingQuality {
		stats.CorrectReviews++
	}

	// Incremental mean keeps the average exact without storing a sum.
	stats.AvgResponseMs += (event.ResponseMs - stats.AvgResponseMs) / float64(stats.TotalReviews)

	switch gap := calendarDaysBetween(stats.LastStudiedAt, now); {
	case stats.LastStudiedAt.IsZero():
		stats.CurrentStreak = 1
	case gap == 1:
		stats.CurrentStreak++
	case gap > 1:
		stats.CurrentStreak = 1
	}

	stats.PreferredModality = event.Modality
	stats.LastStudyHour = now.Hour()
	stats.LastStudiedAt = now
	stats.UpdatedAt = now
}

// calendarDaysBetween returns whole calendar days from a to b in UTC.
func calendarDaysBetween(a, b time.Time) int {
	aDay := a.UTC().Truncate(24 * time.Hour)
	bDay := b.UTC().Truncate(24 * time.Hour)
	return int(bDay.Sub(aDay).Hours() / 24)
}
