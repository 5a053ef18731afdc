package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

func TestGetWord_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()
	word := &domain.Word{ID: uuid.New(), UserID: owner, Term: "die Heimat"}

	wordStore := &mockWordStore{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
			return word, nil
		},
	}

	svc := NewWordService(wordStore, &mockReviewStateStore{}, nil, slog.Default())

	got, err := svc.GetWord(context.Background(), owner, word.ID)
	require.NoError(t, err)
	assert.Equal(t, word, got)

	_, err = svc.GetWord(context.Background(), stranger, word.ID)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestGetWord_NotFound(t *testing.T) {
	t.Parallel()

	wordStore := &mockWordStore{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
			return nil, store.ErrWordNotFound
		},
	}

	svc := NewWordService(wordStore, &mockReviewStateStore{}, nil, slog.Default())

	_, err := svc.GetWord(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, store.ErrWordNotFound)
}

func TestListWords(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	words := []*domain.Word{
		{ID: uuid.New(), UserID: userID, Term: "der Apfel"},
		{ID: uuid.New(), UserID: userID, Term: "die Birne"},
	}

	wordStore := &mockWordStore{
		listByUserFn: func(ctx context.Context, id uuid.UUID) ([]*domain.Word, error) {
			assert.Equal(t, userID, id)
			return words, nil
		},
	}

	svc := NewWordService(wordStore, &mockReviewStateStore{}, nil, slog.Default())

	got, err := svc.ListWords(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, words, got)
}
