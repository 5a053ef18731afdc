package srs

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// Common errors
var (
	ErrNilState     = errors.New("review state cannot be nil")
	ErrNilEvent     = errors.New("review event cannot be nil")
	ErrCorruptState = errors.New("review state is structurally invalid")
	ErrInvalidDays  = errors.New("postpone days must be at least 1")
)

// Service defines the scheduling engine's operations. All methods are
// deterministic: identical inputs always produce identical outputs, and
// "now" is always supplied by the caller.
type Service interface {
	// EstimateQuality converts a review event's raw signals into a 0-5
	// quality score.
	EstimateQuality(event *domain.ReviewEvent) (int, error)

	// ApplyReview computes the post-review state from a precomputed
	// quality score. The personalization multiplier defaults to neutral
	// when zero. The input state is not mutated.
	ApplyReview(
		state *domain.ReviewState,
		quality int,
		personalization float64,
		now time.Time,
	) (*domain.ReviewState, error)

	// ApplyReviewEvent routes a full event through quality estimation and
	// additionally applies the event-accuracy personalization nudge.
	ApplyReviewEvent(
		state *domain.ReviewState,
		event *domain.ReviewEvent,
		personalization float64,
		now time.Time,
	) (*domain.ReviewState, error)

	// EstimateMastery computes the 0-100 mastery score from state and
	// recent session history (most recent last).
	EstimateMastery(state *domain.ReviewState, history []domain.ReviewSession) (int, error)

	// ComputePriority ranks an item's review urgency on a 1-10 scale.
	ComputePriority(state *domain.ReviewState, now time.Time) (int, error)

	// ClassifyReviewType labels the next review for an item.
	ClassifyReviewType(
		state *domain.ReviewState,
		history []domain.ReviewSession,
	) (domain.ReviewType, error)

	// BuildQueue selects, ranks and truncates the items due as of now.
	BuildQueue(
		states []*domain.ReviewState,
		histories map[uuid.UUID][]domain.ReviewSession,
		now time.Time,
		limit int,
		includeOverdue bool,
	) ([]QueueItem, error)

	// DistributeLoad caps per-day review volume, postponing overflow.
	DistributeLoad(
		schedules []*domain.ReviewSchedule,
		maxPerDay int,
	) ([]*domain.ReviewSchedule, error)

	// AdviseNotification derives notification timing, frequency and
	// content from a queue snapshot and user statistics.
	AdviseNotification(
		queue []QueueItem,
		stats *domain.UserStats,
		tier domain.NotificationTier,
		now time.Time,
	) (*NotificationAdvice, error)

	// PersonalizationFactor derives the user-level interval multiplier.
	PersonalizationFactor(stats *domain.UserStats, modality domain.Modality) float64

	// PostponeReview pushes the next review time forward by days.
	PostponeReview(
		state *domain.ReviewState,
		days int,
		now time.Time,
	) (*domain.ReviewState, error)

	// Params exposes the engine's effective configuration.
	Params() *Params
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates an engine with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates an engine with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

func (s *defaultService) Params() *Params {
	return s.params
}

func (s *defaultService) EstimateQuality(event *domain.ReviewEvent) (int, error) {
	if event == nil {
		return 0, ErrNilEvent
	}
	return EstimateQuality(event, s.params), nil
}

func (s *defaultService) ApplyReview(
	state *domain.ReviewState,
	quality int,
	personalization float64,
	now time.Time,
) (*domain.ReviewState, error) {
	if err := s.checkState(state); err != nil {
		return nil, err
	}
	if personalization == 0 {
		personalization = 1.0
	}
	return calculateNextState(state, quality, 0, false, personalization, now, s.params), nil
}

func (s *defaultService) ApplyReviewEvent(
	state *domain.ReviewState,
	event *domain.ReviewEvent,
	personalization float64,
	now time.Time,
) (*domain.ReviewState, error) {
	if err := s.checkState(state); err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNilEvent
	}
	if personalization == 0 {
		personalization = 1.0
	}
	quality := EstimateQuality(event, s.params)
	return calculateNextState(state, quality, event.Accuracy, true, personalization, now, s.params), nil
}

func (s *defaultService) EstimateMastery(
	state *domain.ReviewState,
	history []domain.ReviewSession,
) (int, error) {
	if err := s.checkState(state); err != nil {
		return 0, err
	}
	return EstimateMastery(state, history, s.params), nil
}

func (s *defaultService) ComputePriority(
	state *domain.ReviewState,
	now time.Time,
) (int, error) {
	if err := s.checkState(state); err != nil {
		return 0, err
	}
	return ComputePriority(state, now, s.params), nil
}

func (s *defaultService) ClassifyReviewType(
	state *domain.ReviewState,
	history []domain.ReviewSession,
) (domain.ReviewType, error) {
	if err := s.checkState(state); err != nil {
		return "", err
	}
	return ClassifyReviewType(state, history, s.params), nil
}

func (s *defaultService) BuildQueue(
	states []*domain.ReviewState,
	histories map[uuid.UUID][]domain.ReviewSession,
	now time.Time,
	limit int,
	includeOverdue bool,
) ([]QueueItem, error) {
	for _, state := range states {
		if err := s.checkState(state); err != nil {
			return nil, err
		}
	}
	return BuildQueue(states, histories, now, limit, includeOverdue, s.params), nil
}

func (s *defaultService) DistributeLoad(
	schedules []*domain.ReviewSchedule,
	maxPerDay int,
) ([]*domain.ReviewSchedule, error) {
	if maxPerDay <= 0 {
		maxPerDay = s.params.DailyReviewCap
	}
	return DistributeLoad(schedules, maxPerDay), nil
}

func (s *defaultService) AdviseNotification(
	queue []QueueItem,
	stats *domain.UserStats,
	tier domain.NotificationTier,
	now time.Time,
) (*NotificationAdvice, error) {
	if !tier.IsValid() {
		tier = domain.NotificationTierMedium
	}
	return AdviseNotification(queue, stats, tier, now, s.params), nil
}

func (s *defaultService) PersonalizationFactor(
	stats *domain.UserStats,
	modality domain.Modality,
) float64 {
	return PersonalizationFactor(stats, modality, s.params)
}

func (s *defaultService) PostponeReview(
	state *domain.ReviewState,
	days int,
	now time.Time,
) (*domain.ReviewState, error) {
	if err := s.checkState(state); err != nil {
		return nil, err
	}
	if days < 1 {
		return nil, ErrInvalidDays
	}

	next := *state
	next.NextReviewAt = state.NextReviewAt.AddDate(0, 0, days)
	next.UpdatedAt = now
	return &next, nil
}

// checkState rejects structurally impossible states. Soft numeric drift
// is left for the algorithms to clamp.
func (s *defaultService) checkState(state *domain.ReviewState) error {
	if state == nil {
		return ErrNilState
	}
	if state.CorrectAnswers > state.ReviewCount || state.Repetitions < 0 {
		return ErrCorruptState
	}
	return nil
}
