package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
	"github.com/mmynk/splitcollect/internal/storage"
)

const participantColumns = "id, split_id, position, name, phone, amount, status, method, reference, cash_code, paid_at, updated_at"

var participantColumnsPrefixed = strings.ReplaceAll(participantColumns, ", ", ", p.")

// GetParticipant retrieves a participant by ID.
func (s *PostgresStore) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	p, err := scanParticipant(s.pool.QueryRow(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE id = $1", participantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: participant %s", apperrors.ErrNotFound, participantID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// GetParticipantByReference retrieves the participant holding a payment reference.
func (s *PostgresStore) GetParticipantByReference(ctx context.Context, reference string) (*models.Participant, error) {
	p, err := scanParticipant(s.pool.QueryRow(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE reference = $1", reference))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: reference %s", apperrors.ErrNotFound, reference)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant by reference: %w", err)
	}
	return p, nil
}

// UpdateParticipant writes the payment fields of p if the stored status equals expected.
// The conditional UPDATE is atomic per row, so concurrent writers cannot both succeed.
func (s *PostgresStore) UpdateParticipant(ctx context.Context, p *models.Participant, expected models.Status) error {
	p.UpdatedAt = time.Now().UTC()

	tag, err := s.pool.Exec(ctx,
		`UPDATE participants
		 SET status = $1, method = $2, reference = $3, cash_code = $4, paid_at = $5, updated_at = $6
		 WHERE id = $7 AND status = $8`,
		string(p.Status), string(p.Method), p.Reference, p.CashCode, p.PaidAt, p.UpdatedAt,
		p.ID, string(expected),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateReference
		}
		return fmt.Errorf("failed to update participant: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	err = s.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM participants WHERE id = $1)", p.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check participant existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: participant %s", apperrors.ErrNotFound, p.ID)
	}
	return storage.ErrStatusConflict
}

func (s *PostgresStore) queryParticipants(ctx context.Context, query string, args ...any) ([]models.Participant, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	participants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Participant, error) {
		p, err := scanParticipant(row)
		if err != nil {
			return models.Participant{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan participants: %w", err)
	}
	return participants, nil
}

func scanParticipant(row pgx.Row) (*models.Participant, error) {
	p := &models.Participant{}
	err := row.Scan(&p.ID, &p.SplitID, &p.Position, &p.Name, &p.Phone, &p.Amount, &p.Status, &p.Method,
		&p.Reference, &p.CashCode, &p.PaidAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.PaidAt != nil {
		t := p.PaidAt.UTC()
		p.PaidAt = &t
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}
