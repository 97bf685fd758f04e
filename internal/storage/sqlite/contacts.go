package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
)

// CreateContact persists a new contact to the database.
func (s *SQLiteStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	// Generate ID if not set
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO contacts (id, owner_id, name, phone, created_at) VALUES (?, ?, ?, ?, ?)",
		contact.ID, contact.OwnerID, contact.Name, contact.Phone, toMicros(contact.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}

	return nil
}

// GetContact retrieves a contact by ID.
func (s *SQLiteStore) GetContact(ctx context.Context, contactID string) (*models.Contact, error) {
	contact, err := scanContact(s.db.QueryRowContext(ctx,
		"SELECT id, owner_id, name, phone, created_at FROM contacts WHERE id = ?", contactID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: contact %s", apperrors.ErrNotFound, contactID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}

// ListContacts retrieves all contacts of an owner in insertion order.
func (s *SQLiteStore) ListContacts(ctx context.Context, ownerID string) ([]*models.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner_id, name, phone, created_at FROM contacts WHERE owner_id = ? ORDER BY created_at, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return contacts, nil
}

// UpdateContact updates a contact's name and phone.
func (s *SQLiteStore) UpdateContact(ctx context.Context, contact *models.Contact) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE contacts SET name = ?, phone = ? WHERE id = ?",
		contact.Name, contact.Phone, contact.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	return requireAffected(result, "contact", contact.ID)
}

// DeleteContact removes a contact by ID.
func (s *SQLiteStore) DeleteContact(ctx context.Context, contactID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", contactID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	return requireAffected(result, "contact", contactID)
}

func scanContact(row rowScanner) (*models.Contact, error) {
	contact := &models.Contact{}
	var createdAt int64
	if err := row.Scan(&contact.ID, &contact.OwnerID, &contact.Name, &contact.Phone, &createdAt); err != nil {
		return nil, err
	}
	contact.CreatedAt = fromMicros(createdAt)
	return contact, nil
}

func requireAffected(result sql.Result, kind, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check %s update: %w", kind, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
	}
	return nil
}
