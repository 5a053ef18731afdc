package srs

import (
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// PersonalizationFactor derives a user-level interval multiplier from
// lifetime study behavior, clamped to
// [params.MinPersonalization, params.MaxPersonalization].
//
// Learners with high accuracy and fast responses get factors above 1
// (intervals grow faster for them); struggling or slow learners get
// factors below 1. A small bonus applies when the review modality matches
// the user's preferred one, since recall in the preferred modality is
// typically stronger than the raw numbers suggest.
//
// The factor is recomputed per scheduling decision and never persisted as
// authoritative state. With no recorded history it is a neutral 1.0.
func PersonalizationFactor(stats *domain.UserStats, modality domain.Modality, params *Params) float64 {
	if stats == nil || stats.TotalReviews == 0 {
		return 1.0
	}

	// Accuracy centered on 0.7: a typical learner lands near 1.0.
	factor := 1.0 + (stats.Accuracy()-0.7)

	// Speed adjustment: answering at the optimal latency is neutral,
	// twice the optimal latency costs 0.2.
	if stats.AvgResponseMs > 0 {
		speedRatio := stats.AvgResponseMs / params.OptimalResponseMs
		factor += 0.2 * (1 - speedRatio)
	}

	if modality != "" && modality == stats.PreferredModality {
		factor += 0.1
	}

	return clampFloat(factor, params.MinPersonalization, params.MaxPersonalization)
}
