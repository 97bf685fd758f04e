package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
)

const contactColumns = "id, owner_id, name, phone, created_at"

// CreateContact persists a new contact.
func (s *PostgresStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		"INSERT INTO contacts ("+contactColumns+") VALUES ($1, $2, $3, $4, $5)",
		contact.ID, contact.OwnerID, contact.Name, contact.Phone, contact.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// GetContact retrieves a contact by ID.
func (s *PostgresStore) GetContact(ctx context.Context, contactID string) (*models.Contact, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+contactColumns+" FROM contacts WHERE id = $1", contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	contact, err := pgx.CollectExactlyOneRow(rows, scanContact)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: contact %s", apperrors.ErrNotFound, contactID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

// ListContacts retrieves all contacts of an owner in insertion order.
func (s *PostgresStore) ListContacts(ctx context.Context, ownerID string) ([]*models.Contact, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE owner_id = $1 ORDER BY created_at, id", ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	contacts, err := pgx.CollectRows(rows, scanContact)
	if err != nil {
		return nil, fmt.Errorf("failed to scan contacts: %w", err)
	}
	return contacts, nil
}

// UpdateContact updates a contact's name and phone.
func (s *PostgresStore) UpdateContact(ctx context.Context, contact *models.Contact) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE contacts SET name = $1, phone = $2 WHERE id = $3",
		contact.Name, contact.Phone, contact.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return requireAffected(tag, "contact", contact.ID)
}

// DeleteContact removes a contact by ID.
func (s *PostgresStore) DeleteContact(ctx context.Context, contactID string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM contacts WHERE id = $1", contactID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return requireAffected(tag, "contact", contactID)
}

func scanContact(row pgx.CollectableRow) (*models.Contact, error) {
	contact := &models.Contact{}
	if err := row.Scan(&contact.ID, &contact.OwnerID, &contact.Name, &contact.Phone, &contact.CreatedAt); err != nil {
		return nil, err
	}
	contact.CreatedAt = contact.CreatedAt.UTC()
	return contact, nil
}

func requireAffected(tag pgconn.CommandTag, kind, id string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
	}
	return nil
}
