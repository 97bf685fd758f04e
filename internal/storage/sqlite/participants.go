package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
	"github.com/mmynk/splitcollect/internal/storage"
)

const participantColumns = "id, split_id, position, name, phone, amount, status, method, reference, cash_code, paid_at, updated_at"

// participantColumnsPrefixed is participantColumns qualified with the "p." alias
// (the first column's prefix is written by the caller).
var participantColumnsPrefixed = strings.ReplaceAll(participantColumns, ", ", ", p.")

// GetParticipant retrieves a participant by ID.
func (s *SQLiteStore) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	p, err := scanParticipant(s.db.QueryRowContext(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE id = ?", participantID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: participant %s", apperrors.ErrNotFound, participantID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// GetParticipantByReference retrieves the participant holding a payment reference.
func (s *SQLiteStore) GetParticipantByReference(ctx context.Context, reference string) (*models.Participant, error) {
	p, err := scanParticipant(s.db.QueryRowContext(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE reference = ?", reference,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: reference %s", apperrors.ErrNotFound, reference)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant by reference: %w", err)
	}
	return p, nil
}

// UpdateParticipant writes the payment fields of p if the stored status equals expected.
func (s *SQLiteStore) UpdateParticipant(ctx context.Context, p *models.Participant, expected models.Status) error {
	p.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx,
		`UPDATE participants
		 SET status = ?, method = ?, reference = ?, cash_code = ?, paid_at = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		p.Status, p.Method, nullString(p.Reference), nullString(p.CashCode), nullTime(p.PaidAt),
		toMicros(p.UpdatedAt), p.ID, expected,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateReference
		}
		return fmt.Errorf("failed to update participant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// Check if participant exists
	var exists int
	err = s.db.QueryRowContext(ctx, "SELECT 1 FROM participants WHERE id = ?", p.ID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: participant %s", apperrors.ErrNotFound, p.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to check participant existence: %w", err)
	}
	return storage.ErrStatusConflict
}

func (s *SQLiteStore) queryParticipants(ctx context.Context, query string, args ...any) ([]*models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

func scanParticipant(row rowScanner) (*models.Participant, error) {
	p := &models.Participant{}
	var (
		reference sql.NullString
		cashCode  sql.NullString
		paidAt    sql.NullInt64
		updatedAt int64
	)
	err := row.Scan(&p.ID, &p.SplitID, &p.Position, &p.Name, &p.Phone, &p.Amount, &p.Status, &p.Method,
		&reference, &cashCode, &paidAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if reference.Valid {
		p.Reference = &reference.String
	}
	if cashCode.Valid {
		p.CashCode = &cashCode.String
	}
	if paidAt.Valid {
		t := fromMicros(paidAt.Int64)
		p.PaidAt = &t
	}
	p.UpdatedAt = fromMicros(updatedAt)
	return p, nil
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return toMicros(*v)
}
