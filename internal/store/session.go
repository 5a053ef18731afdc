package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// SessionStore defines the interface for archived review sessions. Sessions
// are append-only; the engine consumes them as per-word history, most
// recent last.
type SessionStore interface {
	// Create appends a review session to the archive.
	// It handles domain validation internally.
	Create(ctx context.Context, session *domain.ReviewSession) error

	// ListByWord retrieves a user's sessions for one word, ordered by
	// review time ascending, limited to the most recent `limit` entries
	// (0 means no limit). Returns an empty slice when there is no history.
	ListByWord(ctx context.Context, userID, wordID uuid.UUID, limit int) ([]domain.ReviewSession, error)

	// ListByUser retrieves all of a user's sessions across words, ordered
	// by review time ascending, grouped per word by the caller.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ReviewSession, error)

	// WithTx returns a new SessionStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) SessionStore
}
