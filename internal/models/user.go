package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered collector account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique). Used for login.
	Email string

	// DisplayName is shown to participants on collection links.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// PayeeVPA and PayeeName are the collector's UPI profile, used as the
	// payee of new splits and requests that name none.
	PayeeVPA  string
	PayeeName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
