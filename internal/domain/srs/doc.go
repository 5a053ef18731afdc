// Package srs implements the spaced-repetition scheduling engine: a pure,
// synchronous computation library with no I/O and no internal concurrency.
//
// The engine combines a modified SM-2 memory model, a personalization
// layer, a mastery estimator, a priority ranker, a review queue builder, a
// daily load distributor and a notification advisor. All operations are
// deterministic functions over explicit inputs; callers supply "now"
// rather than the engine reading the system clock, which keeps every
// computation reproducible and unit-testable.
//
// Numeric policy: values that drift outside their soft bounds (ease
// factor, interval, priority, mastery, quality) are clamped, never
// rejected. Hard errors are reserved for structurally impossible inputs
// such as a nil state or a state whose correct-answer count exceeds its
// review count.
package srs
