package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
	"github.com/mmynk/splitcollect/internal/reconcile"
	"github.com/mmynk/splitcollect/pkg/api"
)

var _ api.ReconcileServiceHandler = (*ReconcileService)(nil)

// LedgerStore is the storage reconciliation reads and writes.
type LedgerStore interface {
	reconcile.ParticipantStore
	GetSplit(ctx context.Context, splitID string) (*models.Split, error)
}

// ReconcileService implements the ReconcileService.
type ReconcileService struct {
	store  LedgerStore
	logger *slog.Logger
}

// NewReconcileService creates a new ReconcileService.
func NewReconcileService(store LedgerStore, logger *slog.Logger) *ReconcileService {
	return &ReconcileService{store: store, logger: logger}
}

// ReconcileLedger matches the caller's bank ledger against declared payments.
// Only participants of the caller's own splits are touched.
func (s *ReconcileService) ReconcileLedger(ctx context.Context, req *connect.Request[api.ReconcileLedgerRequest]) (*connect.Response[api.ReconcileLedgerResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var rows []models.ReconciliationRow
	if strings.TrimSpace(req.Msg.CSV) != "" {
		rows, err = reconcile.ReadLedger(strings.NewReader(req.Msg.CSV))
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, apperrors.Invalid("csv", err.Error()))
		}
	}
	for _, r := range req.Msg.Rows {
		rows = append(rows, models.ReconciliationRow{Reference: r.Reference, Amount: r.Amount, Date: r.Date})
	}

	matcher := reconcile.NewMatcher(&ownedParticipants{store: s.store, ownerID: userID, owners: make(map[string]string)})
	result, err := matcher.Reconcile(ctx, slices.Values(rows))
	if err != nil {
		s.logger.Error("Reconciliation stopped",
			"user_id", userID,
			"processed", len(result.Rows),
			"total", len(rows),
			"error", err,
		)
		return nil, toConnectError(s.logger, "ReconcileLedger", err)
	}

	s.logger.Info("Ledger reconciled",
		"user_id", userID,
		"matched", result.Matched,
		"failed", result.Failed,
		"duplicates", result.Duplicates,
	)

	resp := &api.ReconcileLedgerResponse{
		Matched:    result.Matched,
		Failed:     result.Failed,
		Duplicates: result.Duplicates,
		Rows:       make([]api.RowResult, 0, len(result.Rows)),
	}
	for _, row := range result.Rows {
		resp.Rows = append(resp.Rows, api.RowResult{
			Reference:     row.Reference,
			Outcome:       string(row.Outcome),
			ParticipantID: row.ParticipantID,
		})
	}
	return connect.NewResponse(resp), nil
}

// ownedParticipants hides participants of other collectors' splits, so a
// reference held elsewhere reconciles as unknown.
type ownedParticipants struct {
	store   LedgerStore
	ownerID string
	owners  map[string]string // split ID -> owner ID
}

func (o *ownedParticipants) GetParticipantByReference(ctx context.Context, reference string) (*models.Participant, error) {
	p, err := o.store.GetParticipantByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	owner, ok := o.owners[p.SplitID]
	if !ok {
		split, err := o.store.GetSplit(ctx, p.SplitID)
		if err != nil {
			return nil, err
		}
		owner = split.OwnerID
		o.owners[p.SplitID] = owner
	}
	if owner != o.ownerID {
		return nil, fmt.Errorf("%w: reference %s", apperrors.ErrNotFound, reference)
	}
	return p, nil
}

func (o *ownedParticipants) UpdateParticipant(ctx context.Context, p *models.Participant, expected models.Status) error {
	return o.store.UpdateParticipant(ctx, p, expected)
}
