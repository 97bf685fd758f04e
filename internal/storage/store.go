// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitcollect/internal/models"
)

// ErrStatusConflict is returned by UpdateParticipant when the stored status
// no longer equals the expected pre-state.
var ErrStatusConflict = errors.New("participant status changed concurrently")

// Store defines the interface for storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
//
// Lookups of missing records return apperrors.ErrNotFound. A reference
// already held by another participant yields apperrors.ErrDuplicateReference.
// Every other error is a persistence failure.
type Store interface {
	// CreateSplit persists a split and all of its participants in one transaction.
	// ID, CreatedAt and participant IDs are populated by the store when empty.
	CreateSplit(ctx context.Context, split *models.Split) error

	// GetSplit retrieves a split with its participants in list order.
	GetSplit(ctx context.Context, splitID string) (*models.Split, error)

	// ListSplitsByOwner retrieves all splits of a collector, newest first.
	ListSplitsByOwner(ctx context.Context, ownerID string) ([]*models.Split, error)

	// GetParticipant retrieves a participant by ID.
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)

	// GetParticipantByReference retrieves the participant holding a payment reference.
	GetParticipantByReference(ctx context.Context, reference string) (*models.Participant, error)

	// UpdateParticipant writes the mutable payment fields of p only if the stored
	// status still equals expected. Returns ErrStatusConflict otherwise.
	UpdateParticipant(ctx context.Context, p *models.Participant, expected models.Status) error

	ContactStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}

// ContactStore persists a collector's address book.
type ContactStore interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
	GetContact(ctx context.Context, contactID string) (*models.Contact, error)
	ListContacts(ctx context.Context, ownerID string) ([]*models.Contact, error)
	UpdateContact(ctx context.Context, contact *models.Contact) error
	DeleteContact(ctx context.Context, contactID string) error
}

// UserStore persists collector accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateUserProfile writes DisplayName, PayeeVPA and PayeeName.
	UpdateUserProfile(ctx context.Context, user *models.User) error
}
