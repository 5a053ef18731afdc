package srs

// Params defines all configurable parameters for the scheduling engine.
// NewDefaultParams returns the reference values; every threshold used by
// the algorithms lives here so that no component carries hidden constants.
type Params struct {
	// Core SM-2 limits
	MinEaseFactor     float64
	MaxEaseFactor     float64
	DefaultEaseFactor float64
	MaxIntervalDays   int

	// Quality estimation weights; they must sum to 1.0
	AccuracyWeight   float64
	SpeedWeight      float64
	DifficultyWeight float64

	// OptimalResponseMs is the latency considered a fully confident
	// answer; the speed score decays to zero at twice this value.
	OptimalResponseMs float64

	// Personalization
	PersonalizationWeight float64
	MinPersonalization    float64
	MaxPersonalization    float64

	// Mastery and difficulty thresholds
	MasteryThreshold    int     // Above this an item counts as mastered
	DifficultyThreshold float64 // Recent accuracy below this suggests easing difficulty
	RecentSessionWindow int     // Sessions considered "recent"

	// Load distribution
	DailyReviewCap int

	// Notification advisor
	QuietHourStart    int // Hour of day, inclusive
	QuietHourEnd      int // Hour of day, exclusive
	DefaultNotifyHour int
	EveningNotifyHour int
}

// ParamsConfig allows overriding defaults when constructing Params.
// Zero-valued fields keep their defaults.
type ParamsConfig struct {
	MinEaseFactor     float64
	MaxEaseFactor     float64
	MaxIntervalDays   int
	OptimalResponseMs float64

	PersonalizationWeight float64

	MasteryThreshold    int
	DifficultyThreshold float64
	RecentSessionWindow int

	DailyReviewCap int

	QuietHourStart int
	QuietHourEnd   int
}

// NewDefaultParams creates a new Params instance with the reference
// default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:     1.3,
		MaxEaseFactor:     2.5,
		DefaultEaseFactor: 2.5,
		MaxIntervalDays:   365,

		AccuracyWeight:   0.6,
		SpeedWeight:      0.2,
		DifficultyWeight: 0.2,

		OptimalResponseMs: 3000,

		PersonalizationWeight: 0.3,
		MinPersonalization:    0.5,
		MaxPersonalization:    2.0,

		MasteryThreshold:    80,
		DifficultyThreshold: 0.6,
		RecentSessionWindow: 5,

		DailyReviewCap: 20,

		QuietHourStart:    22,
		QuietHourEnd:      8,
		DefaultNotifyHour: 9,
		EveningNotifyHour: 19,
	}
}

// NewParams creates a new Params instance, overriding defaults with any
// non-zero values from the config.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}
	if config.MaxIntervalDays > 0 {
		params.MaxIntervalDays = config.MaxIntervalDays
	}
	if config.OptimalResponseMs > 0 {
		params.OptimalResponseMs = config.OptimalResponseMs
	}
	if config.PersonalizationWeight > 0 {
		params.PersonalizationWeight = config.PersonalizationWeight
	}
	if config.MasteryThreshold > 0 {
		params.MasteryThreshold = config.MasteryThreshold
	}
	if config.DifficultyThreshold > 0 {
		params.DifficultyThreshold = config.DifficultyThreshold
	}
	if config.RecentSessionWindow > 0 {
		params.RecentSessionWindow = config.RecentSessionWindow
	}
	if config.DailyReviewCap > 0 {
		params.DailyReviewCap = config.DailyReviewCap
	}
	if config.QuietHourStart > 0 {
		params.QuietHourStart = config.QuietHourStart
	}
	if config.QuietHourEnd > 0 {
		params.QuietHourEnd = config.QuietHourEnd
	}

	return params
}

// clampFloat bounds v to [lo, hi].
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampInt bounds v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
