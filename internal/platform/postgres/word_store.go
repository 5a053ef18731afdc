package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/platform/logger"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the
// WordStore interface. If logger is nil, the process default is used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// Create implements store.WordStore.Create
// Returns store.ErrWordExists when the user already has a word with the
// same term, and store.ErrInvalidEntity when the owner does not exist.
func (s *PostgresWordStore) Create(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("word validation failed during create",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return err
	}

	query := `
		INSERT INTO words (id, user_id, term, translation, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		word.ID,
		word.UserID,
		word.Term,
		word.Translation,
		word.Notes,
		word.CreatedAt,
		word.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("word already exists for user",
				slog.String("user_id", word.UserID.String()))
			return store.ErrWordExists
		}
		log.Error("failed to create word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()),
			slog.String("user_id", word.UserID.String()))
		return MapError(err)
	}

	log.Info("word created successfully",
		slog.String("word_id", word.ID.String()),
		slog.String("user_id", word.UserID.String()))
	return nil
}

// GetByID implements store.WordStore.GetByID
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, term, translation, notes, created_at, updated_at
		FROM words
		WHERE id = $1
	`

	var word domain.Word
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&word.ID,
		&word.UserID,
		&word.Term,
		&word.Translation,
		&word.Notes,
		&word.CreatedAt,
		&word.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.String("word_id", id.String()))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word by ID",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return nil, err
	}

	return &word, nil
}

// ListByUser implements store.WordStore.ListByUser
func (s *PostgresWordStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, term, translation, notes, created_at, updated_at
		FROM words
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query words by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	words := []*domain.Word{}
	for rows.Next() {
		var word domain.Word
		err := rows.Scan(
			&word.ID,
			&word.UserID,
			&word.Term,
			&word.Translation,
			&word.Notes,
			&word.CreatedAt,
			&word.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan word row",
				slog.String("error", err.Error()))
			return nil, err
		}
		words = append(words, &word)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed words by user",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(words)))
	return words, nil
}

// Update implements store.WordStore.Update
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) Update(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("word validation failed during update",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return err
	}

	word.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE words
		SET term = $1, translation = $2, notes = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		word.Term,
		word.Translation,
		word.Notes,
		word.UpdatedAt,
		word.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("word term already exists for user",
				slog.String("word_id", word.ID.String()))
			return store.ErrWordExists
		}
		log.Error("failed to update word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "word"); err != nil {
		log.Debug("word not found for update",
			slog.String("word_id", word.ID.String()))
		return store.ErrWordNotFound
	}

	log.Info("word updated successfully",
		slog.String("word_id", word.ID.String()))
	return nil
}

// Delete implements store.WordStore.Delete
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete word",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "word"); err != nil {
		log.Debug("word not found for delete",
			slog.String("word_id", id.String()))
		return store.ErrWordNotFound
	}

	log.Info("word deleted successfully",
		slog.String("word_id", id.String()))
	return nil
}

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{
		db:     tx,
		logger: s.logger,
	}
}
