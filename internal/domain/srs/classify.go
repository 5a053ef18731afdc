package srs

import (
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// ClassifyReviewType labels the next review for an item. It is a pure
// classification recomputed at each scheduling decision, not a stored
// state machine.
//
//   - mastery_check: mastery above params.MasteryThreshold with at least 5
//     consecutive successful repetitions
//   - difficulty_adjustment: recent accuracy above 0.9 with fast responses
//     and at least 3 repetitions (candidate for harder material), or
//     recent accuracy below params.DifficultyThreshold after at least 5
//     lifetime reviews (candidate for easier material)
//   - spaced_repetition: everything else
func ClassifyReviewType(
	state *domain.ReviewState,
	history []domain.ReviewSession,
	params *Params,
) domain.ReviewType {
	mastery := EstimateMastery(state, history, params)
	if mastery > params.MasteryThreshold && state.Repetitions >= 5 {
		return domain.ReviewTypeMasteryCheck
	}

	recent := recentAccuracy(history, params.RecentSessionWindow)

	if recent > 0.9 && fastResponses(history, params) && state.Repetitions >= 3 {
		return domain.ReviewTypeDifficultyAdjustment
	}

	if recent < params.DifficultyThreshold && state.ReviewCount >= 5 {
		return domain.ReviewTypeDifficultyAdjustment
	}

	return domain.ReviewTypeSpacedRepetition
}

// fastResponses reports whether the recent sessions averaged under the
// optimal response latency. No history counts as not fast.
func fastResponses(history []domain.ReviewSession, params *Params) bool {
	if len(history) == 0 {
		return false
	}

	start := len(history) - params.RecentSessionWindow
	if start < 0 {
		start = 0
	}

	var sum float64
	for _, session := range history[start:] {
		sum += session.ResponseMs
	}
	return sum/float64(len(history)-start) < params.OptimalResponseMs
}
