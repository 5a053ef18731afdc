package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("learner@example.com", "correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "learner@example.com", user.Email)
	assert.Equal(t, NotificationTierMedium, user.NotificationTier)
	assert.Equal(t, ModalityFlashcard, user.PreferredModality)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	valid := func() *User {
		return &User{
			ID:                uuid.New(),
			Email:             "learner@example.com",
			Password:          "correct horse battery",
			NotificationTier:  NotificationTierMedium,
			PreferredModality: ModalityFlashcard,
		}
	}

	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr error
	}{
		{"valid", func(u *User) {}, nil},
		{"missing id", func(u *User) { u.ID = uuid.Nil }, ErrEmptyUserID},
		{"empty email", func(u *User) { u.Email = "" }, ErrEmptyEmail},
		{"no at sign", func(u *User) { u.Email = "learner.example.com" }, ErrInvalidEmail},
		{"no domain dot", func(u *User) { u.Email = "learner@example" }, ErrInvalidEmail},
		{"short password", func(u *User) { u.Password = "short" }, ErrPasswordTooShort},
		{"long password", func(u *User) { u.Password = strings.Repeat("x", 73) }, ErrPasswordTooLong},
		{"no password at all", func(u *User) { u.Password = ""; u.HashedPassword = "" }, ErrEmptyPassword},
		{"bad tier", func(u *User) { u.NotificationTier = "shouting" }, ErrInvalidNotifyTier},
		{"bad modality", func(u *User) { u.PreferredModality = "telepathy" }, ErrInvalidModality},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user := valid()
			tt.mutate(user)

			err := user.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUserValidate_HashedPasswordOnly(t *testing.T) {
	t.Parallel()

	// A user loaded from the database has only the hash; that is valid.
	user := &User{
		ID:                uuid.New(),
		Email:             "learner@example.com",
		HashedPassword:    "$2a$10$abcdefghijklmnopqrstuv",
		NotificationTier:  NotificationTierLow,
		PreferredModality: ModalityTyping,
	}
	assert.NoError(t, user.Validate())
}

func TestNotificationTierIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, NotificationTierLow.IsValid())
	assert.True(t, NotificationTierHigh.IsValid())
	assert.False(t, NotificationTier("").IsValid())
	assert.False(t, NotificationTier("urgent").IsValid())
}

func TestModalityIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, ModalityMultipleChoice.IsValid())
	assert.False(t, Modality("").IsValid())
	assert.False(t, Modality("osmosis").IsValid())
}
