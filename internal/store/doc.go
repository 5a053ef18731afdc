// Package store defines the persistence interfaces for the application's
// domain entities, along with the shared error taxonomy and transaction
// helpers used by every implementation.
//
// The interfaces are intentionally database-agnostic: services depend on
// them, and the concrete postgres implementations live in
// internal/platform/postgres. Each store exposes a WithTx method so a
// service can compose several operations into one transaction managed by
// RunInTransaction.
package store
