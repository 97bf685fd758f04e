package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
)

const userColumns = "id, email, display_name, password_hash, payee_vpa, payee_name, created_at, updated_at"

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.PayeeVPA,
		user.PayeeName,
		toMicros(user.CreatedAt),
		toMicros(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// UpdateUserProfile writes the display name and payee profile of user.
func (s *SQLiteStore) UpdateUserProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET display_name = ?, payee_vpa = ?, payee_name = ?, updated_at = ? WHERE id = ?",
		user.DisplayName, user.PayeeVPA, user.PayeeName, toMicros(user.UpdatedAt), user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(result, "user", user.ID)
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var createdAt, updatedAt int64
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.PayeeVPA,
		&user.PayeeName,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	user.CreatedAt = fromMicros(createdAt)
	user.UpdatedAt = fromMicros(updatedAt)
	return user, nil
}
