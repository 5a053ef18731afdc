package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/service"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

func TestCreateWord(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	wordService := &mockWordService{
		createWordFn: func(ctx context.Context, gotUser uuid.UUID, term, translation, notes string) (*domain.Word, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, "die Katze", term)
			assert.Equal(t, "the cat", translation)
			return &domain.Word{ID: uuid.New(), UserID: gotUser, Term: term, Translation: translation}, nil
		},
	}

	handler := NewWordHandler(wordService, nil)

	req := postJSON(t, "/words", WordRequest{Term: "die Katze", Translation: "the cat"})
	rec := httptest.NewRecorder()
	handler.CreateWord(rec, withUserID(req, userID))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp WordResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "die Katze", resp.Term)
	assert.Equal(t, userID.String(), resp.UserID)
}

func TestCreateWord_MissingTerm(t *testing.T) {
	t.Parallel()

	handler := NewWordHandler(&mockWordService{}, nil)

	req := postJSON(t, "/words", WordRequest{Translation: "the cat"})
	rec := httptest.NewRecorder()
	handler.CreateWord(rec, withUserID(req, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Term")
}

func TestCreateWord_Duplicate(t *testing.T) {
	t.Parallel()

	wordService := &mockWordService{
		createWordFn: func(ctx context.Context, userID uuid.UUID, term, translation, notes string) (*domain.Word, error) {
			return nil, store.ErrWordExists
		},
	}

	handler := NewWordHandler(wordService, nil)

	req := postJSON(t, "/words", WordRequest{Term: "die Katze"})
	rec := httptest.NewRecorder()
	handler.CreateWord(rec, withUserID(req, uuid.New()))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Word already exists")
}

func TestGetWordHandler(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	wordID := uuid.New()
	wordService := &mockWordService{
		getWordFn: func(ctx context.Context, gotUser, gotWord uuid.UUID) (*domain.Word, error) {
			assert.Equal(t, wordID, gotWord)
			return &domain.Word{ID: gotWord, UserID: gotUser, Term: "der Hund"}, nil
		},
	}

	handler := NewWordHandler(wordService, nil)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/words/"+wordID.String(), nil), userID)
	rec := serveRoute(http.MethodGet, "/words/{id}", handler.GetWord, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp WordResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "der Hund", resp.Term)
}

func TestGetWordHandler_NotOwned(t *testing.T) {
	t.Parallel()

	wordService := &mockWordService{
		getWordFn: func(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error) {
			return nil, service.ErrNotOwned
		},
	}

	handler := NewWordHandler(wordService, nil)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/words/"+uuid.NewString(), nil), uuid.New())
	rec := serveRoute(http.MethodGet, "/words/{id}", handler.GetWord, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListWordsHandler(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	wordService := &mockWordService{
		listWordsFn: func(ctx context.Context, gotUser uuid.UUID) ([]*domain.Word, error) {
			return []*domain.Word{
				{ID: uuid.New(), UserID: gotUser, Term: "eins"},
				{ID: uuid.New(), UserID: gotUser, Term: "zwei"},
			}, nil
		},
	}

	handler := NewWordHandler(wordService, nil)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/words", nil), userID)
	rec := httptest.NewRecorder()
	handler.ListWords(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []WordResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "eins", resp[0].Term)
}

func TestUpdateWordHandler(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	wordService := &mockWordService{
		updateWordFn: func(ctx context.Context, userID, gotWord uuid.UUID, term, translation, notes string) (*domain.Word, error) {
			assert.Equal(t, wordID, gotWord)
			assert.Equal(t, "die Katze", term)
			return &domain.Word{ID: gotWord, UserID: userID, Term: term}, nil
		},
	}

	handler := NewWordHandler(wordService, nil)

	body, err := json.Marshal(WordRequest{Term: "die Katze"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/words/"+wordID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := serveRoute(http.MethodPut, "/words/{id}", handler.UpdateWord, withUserID(req, uuid.New()))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteWordHandler(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	deleted := false
	wordService := &mockWordService{
		deleteWordFn: func(ctx context.Context, userID, gotWord uuid.UUID) error {
			assert.Equal(t, wordID, gotWord)
			deleted = true
			return nil
		},
	}

	handler := NewWordHandler(wordService, nil)

	req := withUserID(httptest.NewRequest(http.MethodDelete, "/words/"+wordID.String(), nil), uuid.New())
	rec := serveRoute(http.MethodDelete, "/words/{id}", handler.DeleteWord, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, deleted)
}
