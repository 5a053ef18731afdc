package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

// WordService provides vocabulary management operations. Creating a word
// also creates its initial review state so the word enters the review flow
// immediately.
type WordService interface {
	// CreateWord adds a word to the user's collection and initializes its
	// review state in the same transaction.
	CreateWord(ctx context.Context, userID uuid.UUID, term, translation, notes string) (*domain.Word, error)

	// GetWord retrieves a word, verifying ownership.
	// Returns ErrNotOwned if the word belongs to another user.
	GetWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error)

	// ListWords retrieves all of the user's words.
	ListWords(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error)

	// UpdateWord modifies a word's content, verifying ownership.
	UpdateWord(ctx context.Context, userID, wordID uuid.UUID, term, translation, notes string) (*domain.Word, error)

	// DeleteWord removes a word and, via cascade, its review state,
	// sessions and schedules.
	DeleteWord(ctx context.Context, userID, wordID uuid.UUID) error
}

// WordServiceImpl implements the WordService interface
type WordServiceImpl struct {
	wordStore  store.WordStore
	stateStore store.ReviewStateStore
	db         *sql.DB
	logger     *slog.Logger
}

// NewWordService creates a new WordService
func NewWordService(
	wordStore store.WordStore,
	stateStore store.ReviewStateStore,
	db *sql.DB,
	logger *slog.Logger,
) WordService {
	return &WordServiceImpl{
		wordStore:  wordStore,
		stateStore: stateStore,
		db:         db,
		logger:     logger.With("component", "word_service"),
	}
}

// CreateWord adds a word and its initial review state atomically.
func (s *WordServiceImpl) CreateWord(
	ctx context.Context,
	userID uuid.UUID,
	term, translation, notes string,
) (*domain.Word, error) {
	word, err := domain.NewWord(userID, term, translation, notes)
	if err != nil {
		s.logger.Debug("failed to create word object",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create word: %w", err)
	}

	state, err := domain.NewReviewState(userID, word.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create review state: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.wordStore.WithTx(tx).Create(ctx, word); err != nil {
			return err
		}
		return s.stateStore.WithTx(tx).Create(ctx, state)
	})

	if err != nil {
		if errors.Is(err, store.ErrWordExists) {
			s.logger.Debug("attempted to create duplicate word",
				"user_id", userID)
		} else {
			s.logger.Error("failed to save word",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to create word: %w", err)
	}

	s.logger.Info("word created with initial review state",
		"word_id", word.ID,
		"user_id", userID)
	return word, nil
}

// GetWord retrieves a word, verifying ownership.
func (s *WordServiceImpl) GetWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error) {
	word, err := s.wordStore.GetByID(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve word: %w", err)
	}

	if word.UserID != userID {
		s.logger.Warn("user does not own word",
			"user_id", userID,
			"word_id", wordID,
			"owner_id", word.UserID)
		return nil, ErrNotOwned
	}

	return word, nil
}

// ListWords retrieves all of the user's words.
func (s *WordServiceImpl) ListWords(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	words, err := s.wordStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list words",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return words, nil
}

// UpdateWord modifies a word's content, verifying ownership.
func (s *WordServiceImpl) UpdateWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
	term, translation, notes string,
) (*domain.Word, error) {
	var updated *domain.Word
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.wordStore.WithTx(tx)

		word, err := txStore.GetByID(ctx, wordID)
		if err != nil {
			return fmt.Errorf("failed to retrieve word for update: %w", err)
		}
		if word.UserID != userID {
			return ErrNotOwned
		}

		word.Term = term
		word.Translation = translation
		word.Notes = notes

		if err := txStore.Update(ctx, word); err != nil {
			return fmt.Errorf("failed to update word: %w", err)
		}

		updated = word
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotOwned) {
			s.logger.Error("failed to update word",
				"error", err,
				"word_id", wordID,
				"user_id", userID)
		}
		return nil, err
	}

	s.logger.Info("word updated successfully",
		"word_id", wordID,
		"user_id", userID)
	return updated, nil
}

// DeleteWord removes a word after verifying ownership.
func (s *WordServiceImpl) DeleteWord(ctx context.Context, userID, wordID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.wordStore.WithTx(tx)

		word, err := txStore.GetByID(ctx, wordID)
		if err != nil {
			return fmt.Errorf("failed to retrieve word for delete: %w", err)
		}
		if word.UserID != userID {
			return ErrNotOwned
		}

		if err := txStore.Delete(ctx, wordID); err != nil {
			return fmt.Errorf("failed to delete word: %w", err)
		}

		s.logger.Info("word deleted successfully",
			"word_id", wordID,
			"user_id", userID)
		return nil
	})
}
