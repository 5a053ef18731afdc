package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/platform/logger"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend. Sessions are
// append-only; there are no update or delete operations.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the
// SessionStore interface. If logger is nil, the process default is used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// Create implements store.SessionStore.Create
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.ReviewSession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO review_sessions (id, user_id, word_id, accuracy, response_ms, quality, modality, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.WordID,
		session.Accuracy,
		session.ResponseMs,
		session.Quality,
		session.Modality,
		session.ReviewedAt,
	)

	if err != nil {
		log.Error("failed to create review session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()),
			slog.String("user_id", session.UserID.String()))
		return MapError(err)
	}

	log.Debug("review session recorded",
		slog.String("session_id", session.ID.String()),
		slog.String("user_id", session.UserID.String()),
		slog.String("word_id", session.WordID.String()),
		slog.Int("quality", session.Quality))
	return nil
}

// ListByWord implements store.SessionStore.ListByWord
// The most recent `limit` sessions are returned in chronological order; a
// limit of 0 returns the full history.
func (s *PostgresSessionStore) ListByWord(ctx context.Context, userID, wordID uuid.UUID, limit int) ([]domain.ReviewSession, error) {
	// The inner query selects the newest rows, the outer one restores
	// chronological order for the engine.
	query := `
		SELECT id, user_id, word_id, accuracy, response_ms, quality, modality, reviewed_at
		FROM (
			SELECT id, user_id, word_id, accuracy, response_ms, quality, modality, reviewed_at
			FROM review_sessions
			WHERE user_id = $1 AND word_id = $2
			ORDER BY reviewed_at DESC
			LIMIT CASE WHEN $3 > 0 THEN $3 ELSE NULL END
		) recent
		ORDER BY reviewed_at
	`
	return s.list(ctx, query, userID, wordID, limit)
}

// ListByUser implements store.SessionStore.ListByUser
func (s *PostgresSessionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ReviewSession, error) {
	query := `
		SELECT id, user_id, word_id, accuracy, response_ms, quality, modality, reviewed_at
		FROM review_sessions
		WHERE user_id = $1
		ORDER BY reviewed_at
	`
	return s.list(ctx, query, userID)
}

func (s *PostgresSessionStore) list(ctx context.Context, query string, args ...any) ([]domain.ReviewSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query review sessions",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	sessions := []domain.ReviewSession{}
	for rows.Next() {
		var session domain.ReviewSession
		var modality string

		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.WordID,
			&session.Accuracy,
			&session.ResponseMs,
			&session.Quality,
			&modality,
			&session.ReviewedAt,
		)
		if err != nil {
			log.Error("failed to scan session row",
				slog.String("error", err.Error()))
			return nil, err
		}

		session.Modality = domain.Modality(modality)
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return sessions, nil
}

// WithTx implements store.SessionStore.WithTx
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db:     tx,
		logger: s.logger,
	}
}
