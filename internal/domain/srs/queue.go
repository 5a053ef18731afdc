package srs

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// QueueItem is one entry of a built review queue.
type QueueItem struct {
	WordID              uuid.UUID         `json:"word_id"`
	Priority            int               `json:"priority"`
	ReviewType          domain.ReviewType `json:"review_type"`
	DaysSinceLastReview int               `json:"days_since_last_review"`
	NextReviewAt        time.Time         `json:"next_review_at"`
}

// BuildQueue selects the items due for review as of now, ranks them and
// truncates the result to limit entries.
//
// An item is due when now is at or past its next-review date. With
// includeOverdue false, items strictly past their due day are excluded
// and only items due today remain. Selected items are ranked by priority
// descending with earlier next-review dates breaking ties, then truncated.
//
// histories supplies each item's recent session history for mastery and
// review-type computation; missing entries are treated as empty history.
func BuildQueue(
	states []*domain.ReviewState,
	histories map[uuid.UUID][]domain.ReviewSession,
	now time.Time,
	limit int,
	includeOverdue bool,
	params *Params,
) []QueueItem {
	if limit <= 0 {
		return nil
	}

	items := make([]QueueItem, 0, len(states))
	for _, state := range states {
		if now.Before(state.NextReviewAt) {
			continue
		}
		overdueDays := daysBetween(state.NextReviewAt, now)
		if !includeOverdue && overdueDays > 0 {
			continue
		}

		history := histories[state.WordID]

		// Rank against the freshly recomputed mastery rather than the
		// persisted snapshot.
		ranked := *state
		ranked.MasteryLevel = EstimateMastery(state, history, params)

		items = append(items, QueueItem{
			WordID:              state.WordID,
			Priority:            ComputePriority(&ranked, now, params),
			ReviewType:          ClassifyReviewType(state, history, params),
			DaysSinceLastReview: sinceLastReview(state, now),
			NextReviewAt:        state.NextReviewAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority > items[j].Priority
		}
		return items[i].NextReviewAt.Before(items[j].NextReviewAt)
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// daysBetween returns the number of whole calendar days from a to b in
// UTC, negative when b precedes a.
func daysBetween(a, b time.Time) int {
	aDay := a.UTC().Truncate(24 * time.Hour)
	bDay := b.UTC().Truncate(24 * time.Hour)
	return int(bDay.Sub(aDay).Hours() / 24)
}

// sinceLastReview returns whole days since the item was last reviewed,
// 0 for never-reviewed items.
func sinceLastReview(state *domain.ReviewState, now time.Time) int {
	if state.LastReviewedAt.IsZero() {
		return 0
	}
	return int(math.Max(0, now.Sub(state.LastReviewedAt).Hours()/24))
}
