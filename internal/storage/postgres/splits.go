package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
)

const splitColumns = "id, kind, purpose, total, mode, owner_share, owner_id, payee_vpa, payee_name, created_at"

// CreateSplit persists a new split and its participants in one transaction.
func (s *PostgresStore) CreateSplit(ctx context.Context, split *models.Split) error {
	if split.ID == "" {
		split.ID = uuid.New().String()
	}
	if split.CreatedAt.IsZero() {
		split.CreatedAt = time.Now().UTC()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"INSERT INTO splits ("+splitColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
		split.ID, string(split.Kind), split.Purpose, split.Total, string(split.Mode), split.OwnerShare,
		split.OwnerID, split.PayeeVPA, split.PayeeName, split.CreatedAt,
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

		_, err = tx.Exec(ctx,
			"INSERT INTO participants ("+participantColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)",
			p.ID, p.SplitID, p.Position, p.Name, p.Phone, p.Amount, string(p.Status), string(p.Method),
			p.Reference, p.CashCode, p.PaidAt, p.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicateReference
			}
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSplit retrieves a split by ID, including its participants in list order.
func (s *PostgresStore) GetSplit(ctx context.Context, splitID string) (*models.Split, error) {
	split, err := scanSplit(s.pool.QueryRow(ctx, "SELECT "+splitColumns+" FROM splits WHERE id = $1", splitID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: split %s", apperrors.ErrNotFound, splitID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}

	participants, err := s.queryParticipants(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE split_id = $1 ORDER BY position", splitID)
	if err != nil {
		return nil, err
	}
	split.Participants = participants
	return split, nil
}

// ListSplitsByOwner retrieves all splits of a collector, newest first.
func (s *PostgresStore) ListSplitsByOwner(ctx context.Context, ownerID string) ([]*models.Split, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+splitColumns+" FROM splits WHERE owner_id = $1 ORDER BY created_at DESC, id", ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	splits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Split, error) {
		return scanSplit(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan splits: %w", err)
	}

	participants, err := s.queryParticipants(ctx,
		`SELECT p.`+participantColumnsPrefixed+` FROM participants p
		 JOIN splits s ON s.id = p.split_id
		 WHERE s.owner_id = $1 ORDER BY p.split_id, p.position`, ownerID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Split, len(splits))
	for _, split := range splits {
		byID[split.ID] = split
	}
	for _, p := range participants {
		if split, ok := byID[p.SplitID]; ok {
			split.Participants = append(split.Participants, p)
		}
	}
	return splits, nil
}

func scanSplit(row pgx.Row) (*models.Split, error) {
	split := &models.Split{}
	err := row.Scan(&split.ID, &split.Kind, &split.Purpose, &split.Total, &split.Mode, &split.OwnerShare,
		&split.OwnerID, &split.PayeeVPA, &split.PayeeName, &split.CreatedAt)
	if err != nil {
		return nil, err
	}
	split.CreatedAt = split.CreatedAt.UTC()
	return split, nil
}
