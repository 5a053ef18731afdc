// Package domain contains the core business entities, value objects, and
// domain logic of the vocabulary learning platform: users, words, per-word
// review state, review events and the schedule entries produced by the
// scheduling engine. It is independent of any specific infrastructure or
// delivery mechanism.
package domain
