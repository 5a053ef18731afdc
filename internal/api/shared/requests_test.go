package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagValidated struct {
	Email string `json:"email" validate:"required,email"`
}

type selfValidated struct {
	Term string `json:"term"`
}

var errEmptyTerm = errors.New("term cannot be empty")

func (s selfValidated) Validate() error {
	if s.Term == "" {
		return errEmptyTerm
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co"}`))

	var body tagValidated
	require.NoError(t, DecodeJSON(req, &body))
	assert.Equal(t, "a@b.co", body.Email)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{broken"))
	assert.Error(t, DecodeJSON(req, &body))
}

func TestValidateRequest_TagBased(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(tagValidated{Email: "a@b.co"}))
	assert.Error(t, ValidateRequest(tagValidated{Email: "not-an-email"}))
	assert.Error(t, ValidateRequest(tagValidated{}))
}

func TestValidateRequest_PrefersValidateMethod(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(selfValidated{Term: "die Katze"}))
	assert.ErrorIs(t, ValidateRequest(selfValidated{}), errEmptyTerm)
}
