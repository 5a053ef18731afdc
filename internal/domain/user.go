package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID          = errors.New("user ID cannot be empty")
	ErrEmptyEmail           = errors.New("email cannot be empty")
	ErrPasswordTooShort     = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong      = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword        = errors.New("password cannot be empty")
	ErrInvalidNotifyTier    = errors.New("invalid notification tier")
	ErrInvalidModality      = errors.New("invalid review modality")
)

// NotificationTier expresses how aggressively a user wants to be reminded
// to study. It scales the frequency recommendation of the notification
// advisor.
type NotificationTier string

const (
	NotificationTierLow    NotificationTier = "low"
	NotificationTierMedium NotificationTier = "medium"
	NotificationTierHigh   NotificationTier = "high"
)

// Modality is the exercise form a review was performed in.
type Modality string

const (
	ModalityFlashcard      Modality = "flashcard"
	ModalityTyping         Modality = "typing"
	ModalityListening      Modality = "listening"
	ModalityMultipleChoice Modality = "multiple_choice"
)

// User represents a registered learner.
type User struct {
	ID                uuid.UUID        `json:"id"`
	Email             string           `json:"email"`
	Password          string           `json:"-"` // Plaintext, only set transiently during registration
	HashedPassword    string           `json:"-"` // Never expose password hash in JSON
	NotificationTier  NotificationTier `json:"notification_tier"`
	PreferredModality Modality         `json:"preferred_modality"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// NewUser creates a new User with the given email and password and
// medium-tier notification defaults. The caller is responsible for hashing
// the password before the user is stored.
func NewUser(email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:                uuid.New(),
		Email:             email,
		Password:          password,
		NotificationTier:  NotificationTierMedium,
		PreferredModality: ModalityFlashcard,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		if len(u.Password) < 12 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 { // bcrypt's practical limit
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	if !u.NotificationTier.IsValid() {
		return ErrInvalidNotifyTier
	}

	if !u.PreferredModality.IsValid() {
		return ErrInvalidModality
	}

	return nil
}

// IsValid reports whether the tier is one of the known values.
func (t NotificationTier) IsValid() bool {
	switch t {
	case NotificationTierLow, NotificationTierMedium, NotificationTierHigh:
		return true
	default:
		return false
	}
}

// IsValid reports whether the modality is one of the known values.
func (m Modality) IsValid() bool {
	switch m {
	case ModalityFlashcard, ModalityTyping, ModalityListening, ModalityMultipleChoice:
		return true
	default:
		return false
	}
}

// validEmailFormat performs basic structural validation of an email
// address: a single non-leading, non-trailing @ followed by a domain that
// contains an interior dot.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
