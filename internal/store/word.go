package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// WordStore defines the interface for vocabulary word persistence.
type WordStore interface {
	// Create saves a new word to the store.
	// It handles domain validation internally.
	// Returns ErrWordExists if the user already has a word with this text.
	Create(ctx context.Context, word *domain.Word) error

	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// ListByUser retrieves all words owned by the given user, ordered by
	// creation time. Returns an empty slice when the user has no words.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error)

	// Update modifies an existing word's details.
	// Returns ErrWordNotFound if the word does not exist.
	Update(ctx context.Context, word *domain.Word) error

	// Delete removes a word by its unique ID. Associated review state,
	// sessions and schedules are removed by the database's cascade rules.
	// Returns ErrWordNotFound if the word does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new WordStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) WordStore
}
