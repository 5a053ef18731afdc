package srs

import (
	"math"

	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// EstimateMastery computes a 0-100 mastery score for an item from its
// state and recent session history (ordered most recent last).
//
// The score is additive:
//
//	baseAccuracy * 40:   lifetime accuracy fraction
//	recentAccuracy * 30: mean accuracy of the last params.RecentSessionWindow sessions
//	consistencyBonus:    0-20, from the coefficient of variation of
//	                     inter-session gaps (steady habits score higher)
//	repetitionBonus:     min(20, repetitions*2)
//
// then multiplied by (1 + difficultyAdjustments*0.1) and clamped to
// [0,100]. With no sessions the recent and consistency terms are zero;
// a zero review count yields zero base accuracy (guarded division).
func EstimateMastery(state *domain.ReviewState, history []domain.ReviewSession, params *Params) int {
	base := state.Accuracy() * 40

	recent := recentAccuracy(history, params.RecentSessionWindow) * 30

	consistency := consistencyBonus(history)

	repetition := math.Min(20, float64(state.Repetitions)*2)

	score := base + recent + consistency + repetition
	score *= 1 + float64(state.DifficultyAdjustments)*0.1

	return clampInt(int(math.Round(score)), 0, 100)
}

// recentAccuracy returns the mean accuracy of the last window sessions,
// 0 when there is no history.
func recentAccuracy(history []domain.ReviewSession, window int) float64 {
	if len(history) == 0 || window <= 0 {
		return 0
	}

	start := len(history) - window
	if start < 0 {
		start = 0
	}

	var sum float64
	for _, session := range history[start:] {
		sum += clampFloat(session.Accuracy, 0, 1)
	}
	return sum / float64(len(history)-start)
}

// consistencyBonus rewards evenly spaced study sessions. It computes the
// coefficient of variation of the gaps (in days) between consecutive
// session timestamps and returns max(0, 20 - CV*10). Fewer than three
// sessions give no bonus.
func consistencyBonus(history []domain.ReviewSession) float64 {
	if len(history) < 3 {
		return 0
	}

	gaps := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		gap := history[i].ReviewedAt.Sub(history[i-1].ReviewedAt).Hours() / 24
		gaps = append(gaps, gap)
	}

	var sum float64
	for _, g := range gaps {
		sum += g
	}
	mean := sum / float64(len(gaps))
	if mean <= 0 {
		return 0
	}

	var variance float64
	for _, g := range gaps {
		variance += (g - mean) * (g - mean)
	}
	variance /= float64(len(gaps))

	cv := math.Sqrt(variance) / mean
	return math.Max(0, 20-cv*10)
}
