package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// ReviewStateStore defines the interface for review state persistence.
// There is exactly one state row per user/word pair; it carries the memory
// model the scheduling engine reads and writes.
type ReviewStateStore interface {
	// Create saves a new review state.
	// It handles domain validation internally.
	// Returns ErrReviewStateExists if a state already exists for the pair.
	Create(ctx context.Context, state *domain.ReviewState) error

	// Get retrieves the review state for a user/word pair.
	// Returns ErrReviewStateNotFound if no state exists.
	// NOTE: This method does NOT provide any row locking, so it should not
	// be used when you plan to update the row and need concurrency
	// protection.
	Get(ctx context.Context, userID, wordID uuid.UUID) (*domain.ReviewState, error)

	// GetForUpdate retrieves the review state with a row-level lock using
	// SELECT FOR UPDATE. Use within a transaction when you plan to update
	// the row and need protection from concurrent modifications.
	// Returns ErrReviewStateNotFound if no state exists.
	GetForUpdate(ctx context.Context, userID, wordID uuid.UUID) (*domain.ReviewState, error)

	// ListDue retrieves all of a user's review states due at or before the
	// given time, ordered by next review time. Returns an empty slice when
	// nothing is due.
	ListDue(ctx context.Context, userID uuid.UUID, dueBefore time.Time) ([]*domain.ReviewState, error)

	// ListByUser retrieves all of a user's review states.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewState, error)

	// Update modifies an existing review state. The UserID and WordID
	// fields identify the record.
	// Returns ErrReviewStateNotFound if no state exists.
	Update(ctx context.Context, state *domain.ReviewState) error

	// Delete removes the review state for a user/word pair.
	// Returns ErrReviewStateNotFound if no state exists.
	Delete(ctx context.Context, userID, wordID uuid.UUID) error

	// WithTx returns a new ReviewStateStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ReviewStateStore
}
