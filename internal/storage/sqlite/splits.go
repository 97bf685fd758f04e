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

const splitColumns = "id, kind, purpose, total, mode, owner_share, owner_id, payee_vpa, payee_name, created_at"

// CreateSplit persists a new split and its participants in one transaction.
func (s *SQLiteStore) CreateSplit(ctx context.Context, split *models.Split) error {
	// Generate IDs if not set
	if split.ID == "" {
		split.ID = uuid.New().String()
	}
	if split.CreatedAt.IsZero() {
		split.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO splits ("+splitColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		split.ID, split.Kind, split.Purpose, split.Total, split.Mode, split.OwnerShare,
		split.OwnerID, split.PayeeVPA, split.PayeeName, toMicros(split.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert split: %w", err)
	}

	for i := range split.Participants {
		p := &split.Participants[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		p.SplitID = split.ID
		p.Position = i
		if p.Status == "" {
			p.Status = models.StatusPending
		}
		p.UpdatedAt = split.CreatedAt

		_, err = tx.ExecContext(ctx,
			"INSERT INTO participants ("+participantColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			p.ID, p.SplitID, p.Position, p.Name, p.Phone, p.Amount, p.Status, p.Method,
			nullString(p.Reference), nullString(p.CashCode), nullTime(p.PaidAt), toMicros(p.UpdatedAt),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicateReference
			}
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSplit retrieves a split by ID, including its participants in list order.
func (s *SQLiteStore) GetSplit(ctx context.Context, splitID string) (*models.Split, error) {
	split, err := scanSplit(s.db.QueryRowContext(ctx,
		"SELECT "+splitColumns+" FROM splits WHERE id = ?", splitID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: split %s", apperrors.ErrNotFound, splitID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}

	participants, err := s.queryParticipants(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE split_id = ? ORDER BY position",
		splitID,
	)
	if err != nil {
		return nil, err
	}
	split.Participants = make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		split.Participants = append(split.Participants, *p)
	}

	return split, nil
}

// ListSplitsByOwner retrieves all splits of a collector, newest first.
func (s *SQLiteStore) ListSplitsByOwner(ctx context.Context, ownerID string) ([]*models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+splitColumns+" FROM splits WHERE owner_id = ? ORDER BY created_at DESC, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}

	var splits []*models.Split
	byID := make(map[string]*models.Split)
	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
		byID[split.ID] = split
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	// Close before the next query: the store holds a single connection.
	rows.Close()

	participants, err := s.queryParticipants(ctx,
		`SELECT p.`+participantColumnsPrefixed+` FROM participants p
		 JOIN splits s ON s.id = p.split_id
		 WHERE s.owner_id = ? ORDER BY p.split_id, p.position`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	for _, p := range participants {
		if split, ok := byID[p.SplitID]; ok {
			split.Participants = append(split.Participants, *p)
		}
	}

	return splits, nil
}

func scanSplit(row rowScanner) (*models.Split, error) {
	split := &models.Split{}
	var createdAt int64
	err := row.Scan(&split.ID, &split.Kind, &split.Purpose, &split.Total, &split.Mode, &split.OwnerShare,
		&split.OwnerID, &split.PayeeVPA, &split.PayeeName, &createdAt)
	if err != nil {
		return nil, err
	}
	split.CreatedAt = fromMicros(createdAt)
	return split, nil
}
