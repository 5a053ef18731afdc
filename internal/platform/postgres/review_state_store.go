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

// reviewStateColumns is the column list shared by every SELECT in this
// store, kept in one place so the scan helpers stay in sync.
const reviewStateColumns = `
	user_id, word_id, ease_factor, interval_days, repetitions,
	mastery_level, difficulty_adjustments, review_count, correct_answers,
	last_reviewed_at, next_review_at, created_at, updated_at
`

// PostgresReviewStateStore implements the store.ReviewStateStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStateStore creates a new PostgreSQL implementation of
// the ReviewStateStore interface. If logger is nil, the process default is
// used.
func NewPostgresReviewStateStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStateStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_state_store")),
	}
}

// Ensure PostgresReviewStateStore implements store.ReviewStateStore interface
var _ store.ReviewStateStore = (*PostgresReviewStateStore)(nil)

// Create implements store.ReviewStateStore.Create
// Returns store.ErrReviewStateExists if a state already exists for the
// user/word pair, and store.ErrInvalidEntity if either ID does not exist.
func (s *PostgresReviewStateStore) Create(ctx context.Context, state *domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		log.Warn("review state validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", state.UserID.String()),
			slog.String("word_id", state.WordID.String()))
		return err
	}

	query := `
		INSERT INTO review_states (
			user_id, word_id, ease_factor, interval_days, repetitions,
			mastery_level, difficulty_adjustments, review_count, correct_answers,
			last_reviewed_at, next_review_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		state.UserID,
		state.WordID,
		state.EaseFactor,
		state.IntervalDays,
		state.Repetitions,
		state.MasteryLevel,
		state.DifficultyAdjustments,
		state.ReviewCount,
		state.CorrectAnswers,
		nullableTime(state.LastReviewedAt),
		state.NextReviewAt,
		state.CreatedAt,
		state.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("review state already exists",
				slog.String("user_id", state.UserID.String()),
				slog.String("word_id", state.WordID.String()))
			return store.ErrReviewStateExists
		}
		log.Error("failed to create review state",
			slog.String("error", err.Error()),
			slog.String("user_id", state.UserID.String()),
			slog.String("word_id", state.WordID.String()))
		return MapError(err)
	}

	log.Info("review state created successfully",
		slog.String("user_id", state.UserID.String()),
		slog.String("word_id", state.WordID.String()))
	return nil
}

// Get implements store.ReviewStateStore.Get
// Returns store.ErrReviewStateNotFound if no state exists for the pair.
func (s *PostgresReviewStateStore) Get(ctx context.Context, userID, wordID uuid.UUID) (*domain.ReviewState, error) {
	return s.get(ctx, userID, wordID, false)
}

// GetForUpdate implements store.ReviewStateStore.GetForUpdate
// It acquires a row-level lock with SELECT FOR UPDATE, so it must run
// inside a transaction.
func (s *PostgresReviewStateStore) GetForUpdate(ctx context.Context, userID, wordID uuid.UUID) (*domain.ReviewState, error) {
	return s.get(ctx, userID, wordID, true)
}

func (s *PostgresReviewStateStore) get(ctx context.Context, userID, wordID uuid.UUID, forUpdate bool) (*domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + reviewStateColumns + `
		FROM review_states
		WHERE user_id = $1 AND word_id = $2
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	state, err := scanReviewState(s.db.QueryRowContext(ctx, query, userID, wordID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("review state not found",
				slog.String("user_id", userID.String()),
				slog.String("word_id", wordID.String()))
			return nil, store.ErrReviewStateNotFound
		}
		log.Error("failed to get review state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("word_id", wordID.String()))
		return nil, err
	}

	return state, nil
}

// ListDue implements store.ReviewStateStore.ListDue
func (s *PostgresReviewStateStore) ListDue(ctx context.Context, userID uuid.UUID, dueBefore time.Time) ([]*domain.ReviewState, error) {
	query := `SELECT ` + reviewStateColumns + `
		FROM review_states
		WHERE user_id = $1 AND next_review_at <= $2
		ORDER BY next_review_at
	`
	return s.list(ctx, query, userID, dueBefore)
}

// ListByUser implements store.ReviewStateStore.ListByUser
func (s *PostgresReviewStateStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewState, error) {
	query := `SELECT ` + reviewStateColumns + `
		FROM review_states
		WHERE user_id = $1
		ORDER BY next_review_at
	`
	return s.list(ctx, query, userID)
}

func (s *PostgresReviewStateStore) list(ctx context.Context, query string, args ...any) ([]*domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query review states",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	states := []*domain.ReviewState{}
	for rows.Next() {
		state, err := scanReviewState(rows)
		if err != nil {
			log.Error("failed to scan review state row",
				slog.String("error", err.Error()))
			return nil, err
		}
		states = append(states, state)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return states, nil
}

// Update implements store.ReviewStateStore.Update
// Returns store.ErrReviewStateNotFound if no state exists for the pair.
func (s *PostgresReviewStateStore) Update(ctx context.Context, state *domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		log.Warn("review state validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", state.UserID.String()),
			slog.String("word_id", state.WordID.String()))
		return err
	}

	query := `
		UPDATE review_states
		SET ease_factor = $1, interval_days = $2, repetitions = $3,
			mastery_level = $4, difficulty_adjustments = $5,
			review_count = $6, correct_answers = $7,
			last_reviewed_at = $8, next_review_at = $9, updated_at = $10
		WHERE user_id = $11 AND word_id = $12
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		state.EaseFactor,
		state.IntervalDays,
		state.Repetitions,
		state.MasteryLevel,
		state.DifficultyAdjustments,
		state.ReviewCount,
		state.CorrectAnswers,
		nullableTime(state.LastReviewedAt),
		state.NextReviewAt,
		state.UpdatedAt,
		state.UserID,
		state.WordID,
	)

	if err != nil {
		log.Error("failed to update review state",
			slog.String("error", err.Error()),
			slog.String("user_id", state.UserID.String()),
			slog.String("word_id", state.WordID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "review state"); err != nil {
		log.Debug("review state not found for update",
			slog.String("user_id", state.UserID.String()),
			slog.String("word_id", state.WordID.String()))
		return store.ErrReviewStateNotFound
	}

	log.Debug("review state updated successfully",
		slog.String("user_id", state.UserID.String()),
		slog.String("word_id", state.WordID.String()))
	return nil
}

// Delete implements store.ReviewStateStore.Delete
// Returns store.ErrReviewStateNotFound if no state exists for the pair.
func (s *PostgresReviewStateStore) Delete(ctx context.Context, userID, wordID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM review_states WHERE user_id = $1 AND word_id = $2`,
		userID,
		wordID,
	)
	if err != nil {
		log.Error("failed to delete review state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("word_id", wordID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "review state"); err != nil {
		return store.ErrReviewStateNotFound
	}

	log.Info("review state deleted successfully",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()))
	return nil
}

// WithTx implements store.ReviewStateStore.WithTx
func (s *PostgresReviewStateStore) WithTx(tx *sql.Tx) store.ReviewStateStore {
	return &PostgresReviewStateStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanner abstracts *sql.Row and *sql.Rows for the shared scan helper.
type scanner interface {
	Scan(dest ...any) error
}

// scanReviewState reads one review state row. The caller handles
// sql.ErrNoRows.
func scanReviewState(row scanner) (*domain.ReviewState, error) {
	var state domain.ReviewState
	var lastReviewed sql.NullTime

	err := row.Scan(
		&state.UserID,
		&state.WordID,
		&state.EaseFactor,
		&state.IntervalDays,
		&state.Repetitions,
		&state.MasteryLevel,
		&state.DifficultyAdjustments,
		&state.ReviewCount,
		&state.CorrectAnswers,
		&lastReviewed,
		&state.NextReviewAt,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewed.Valid {
		state.LastReviewedAt = lastReviewed.Time
	}
	return &state, nil
}

// nullableTime converts a zero time to a SQL NULL. A word that has never
// been reviewed has no last_reviewed_at.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
