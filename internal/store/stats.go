package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// StatsStore defines the interface for user study statistics persistence.
// There is one row per user, maintained incrementally by the review service.
type StatsStore interface {
	// Get retrieves a user's study statistics.
	// Returns ErrNotFound if no statistics row exists yet.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)

	// GetForUpdate retrieves a user's statistics with a row-level lock
	// using SELECT FOR UPDATE. Use within a transaction when the row will
	// be updated.
	// Returns ErrNotFound if no statistics row exists yet.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)

	// Upsert creates the statistics row if absent, or replaces the stored
	// aggregates otherwise.
	Upsert(ctx context.Context, stats *domain.UserStats) error

	// WithTx returns a new StatsStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) StatsStore
}
