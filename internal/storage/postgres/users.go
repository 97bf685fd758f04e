package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
)

const userColumns = "id, email, display_name, password_hash, payee_vpa, payee_name, created_at, updated_at"

// CreateUser inserts a new user into the database.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO users ("+userColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		user.ID, user.Email, user.DisplayName, user.PasswordHash, user.PayeeVPA, user.PayeeName,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", email)
}

// GetUserByID retrieves a user by their ID.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

// UpdateUserProfile writes the display name and payee profile of user.
func (s *PostgresStore) UpdateUserProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx,
		"UPDATE users SET display_name = $1, payee_vpa = $2, payee_name = $3, updated_at = $4 WHERE id = $5",
		user.DisplayName, user.PayeeVPA, user.PayeeName, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(tag, "user", user.ID)
}

// column is one of the fixed names above, never user input.
func (s *PostgresStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	user := &models.User{}
	err := s.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+" = $1", value,
	).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.PayeeVPA, &user.PayeeName,
		&user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return user, nil
}
