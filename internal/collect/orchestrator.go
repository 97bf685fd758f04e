// Package collect creates splits and payment requests and reports on them.
package collect

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/calculator"
	"github.com/mmynk/splitcollect/internal/metrics"
	"github.com/mmynk/splitcollect/internal/models"
)

// SplitStore is the storage the orchestrator needs.
type SplitStore interface {
	CreateSplit(ctx context.Context, split *models.Split) error
	GetSplit(ctx context.Context, splitID string) (*models.Split, error)
	ListSplitsByOwner(ctx context.Context, ownerID string) ([]*models.Split, error)
}

// RequestInput describes a 1:1 payment request.
type RequestInput struct {
	Name      string          `validate:"required,max=100"`
	Phone     string          `validate:"omitempty,max=20"`
	Amount    decimal.Decimal `validate:"positive_decimal"`
	Note      string          `validate:"required,max=200"`
	PayeeVPA  string          `validate:"required,max=100"`
	PayeeName string          `validate:"required,max=100"`
}

// Counts tallies participants by status.
type Counts struct {
	Pending        int
	CashCodeIssued int
	Declared       int
	Verified       int
	Mismatched     int
}

// Status is a read-only projection of a split.
type Status struct {
	Split  *models.Split
	Counts Counts

	// Collected is the sum of DECLARED and VERIFIED participant amounts.
	Collected decimal.Decimal

	// Outstanding is the sum of amounts not yet declared, plus mismatched ones.
	Outstanding decimal.Decimal

	// Settled is true once every participant is VERIFIED.
	Settled bool
}

// Orchestrator coordinates allocation and persistence of splits and requests.
type Orchestrator struct {
	store     SplitStore
	precision int32
	validate  *validator.Validate
}

// New creates an Orchestrator. precision is the number of decimal places
// of the smallest currency unit.
func New(store SplitStore, precision int32) *Orchestrator {
	return &Orchestrator{
		store:     store,
		precision: precision,
		validate:  newValidator(),
	}
}

// Preview computes the allocation of draft without persisting anything.
func (o *Orchestrator) Preview(draft models.DraftSplit) (*calculator.Allocation, error) {
	draft = normalizeDraft(draft)
	if err := o.validateDraft(draft); err != nil {
		return nil, err
	}
	return calculator.Allocate(draft.Total, draft.Mode, draft.Participants, o.precision)
}

// CreateSplit allocates draft and stores the split with all participants
// in one transaction. It returns the new split's ID.
func (o *Orchestrator) CreateSplit(ctx context.Context, ownerID string, draft models.DraftSplit) (string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return "", apperrors.Invalid("owner_id", "is required")
	}

	alloc, err := o.Preview(draft)
	if err != nil {
		return "", err
	}

	split := &models.Split{
		Kind:       models.KindSplit,
		Purpose:    strings.TrimSpace(draft.Purpose),
		Total:      alloc.Total,
		Mode:       alloc.Mode,
		OwnerShare: alloc.OwnerShare,
		OwnerID:    ownerID,
		PayeeVPA:   strings.TrimSpace(draft.PayeeVPA),
		PayeeName:  strings.TrimSpace(draft.PayeeName),
	}
	for _, share := range alloc.Shares {
		split.Participants = append(split.Participants, models.Participant{
			Name:   share.Name,
			Phone:  share.Phone,
			Amount: share.Amount,
			Status: models.StatusPending,
		})
	}

	return o.persist(ctx, split)
}

// CreateSingleRequest stores a payment request: a REQUEST split with one
// PENDING participant owing the whole amount.
func (o *Orchestrator) CreateSingleRequest(ctx context.Context, ownerID string, in RequestInput) (string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return "", apperrors.Invalid("owner_id", "is required")
	}

	in = RequestInput{
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Amount:    in.Amount,
		Note:      strings.TrimSpace(in.Note),
		PayeeVPA:  strings.TrimSpace(in.PayeeVPA),
		PayeeName: strings.TrimSpace(in.PayeeName),
	}
	if err := o.validate.Struct(in); err != nil {
		return "", validationError(err)
	}

	// Partition over a single participant checks the amount's precision.
	alloc, err := calculator.Allocate(in.Amount, models.ModePartition,
		[]models.DraftParticipant{{Name: in.Name, Phone: in.Phone, Amount: in.Amount}}, o.precision)
	if err != nil {
		return "", err
	}

	split := &models.Split{
		Kind:       models.KindRequest,
		Purpose:    in.Note,
		Total:      alloc.Total,
		Mode:       alloc.Mode,
		OwnerShare: alloc.OwnerShare,
		OwnerID:    ownerID,
		PayeeVPA:   in.PayeeVPA,
		PayeeName:  in.PayeeName,
		Participants: []models.Participant{{
			Name:   in.Name,
			Phone:  in.Phone,
			Amount: in.Amount,
			Status: models.StatusPending,
		}},
	}

	return o.persist(ctx, split)
}

// GetStatus returns the current state of a split. It never writes.
func (o *Orchestrator) GetStatus(ctx context.Context, splitID string) (*Status, error) {
	split, err := o.store.GetSplit(ctx, splitID)
	if err != nil {
		return nil, err
	}
	return project(split), nil
}

// ListSplits returns a collector's splits and requests, newest first.
func (o *Orchestrator) ListSplits(ctx context.Context, ownerID string) ([]*Status, error) {
	splits, err := o.store.ListSplitsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	statuses := make([]*Status, 0, len(splits))
	for _, split := range splits {
		statuses = append(statuses, project(split))
	}
	return statuses, nil
}

// Summary aggregates what a collector is still owed across all splits.
func (o *Orchestrator) Summary(ctx context.Context, ownerID string) (calculator.Outstanding, error) {
	splits, err := o.store.ListSplitsByOwner(ctx, ownerID)
	if err != nil {
		return calculator.Outstanding{}, err
	}
	return calculator.CalculateOutstanding(splits), nil
}

func (o *Orchestrator) persist(ctx context.Context, split *models.Split) (string, error) {
	if err := o.store.CreateSplit(ctx, split); err != nil {
		return "", err
	}
	metrics.SplitsCreated.WithLabelValues(string(split.Kind), string(split.Mode)).Inc()
	return split.ID, nil
}

func (o *Orchestrator) validateDraft(draft models.DraftSplit) error {
	if err := o.validate.Struct(draft); err != nil {
		return validationError(err)
	}
	if draft.Mode != models.ModeSingle && len(draft.Participants) == 0 {
		return apperrors.Invalid("participants", "at least one participant is required")
	}
	return nil
}

func normalizeDraft(draft models.DraftSplit) models.DraftSplit {
	out := draft
	out.Purpose = strings.TrimSpace(draft.Purpose)
	out.PayeeVPA = strings.TrimSpace(draft.PayeeVPA)
	out.PayeeName = strings.TrimSpace(draft.PayeeName)
	out.Participants = make([]models.DraftParticipant, len(draft.Participants))
	for i, p := range draft.Participants {
		out.Participants[i] = models.DraftParticipant{
			Name:   strings.TrimSpace(p.Name),
			Phone:  strings.TrimSpace(p.Phone),
			Amount: p.Amount,
		}
	}
	return out
}

func project(split *models.Split) *Status {
	st := &Status{
		Split:       split,
		Collected:   decimal.Zero,
		Outstanding: decimal.Zero,
		Settled:     len(split.Participants) > 0,
	}
	for _, p := range split.Participants {
		switch p.Status {
		case models.StatusPending:
			st.Counts.Pending++
		case models.StatusCashCodeIssued:
			st.Counts.CashCodeIssued++
		case models.StatusDeclared:
			st.Counts.Declared++
		case models.StatusVerified:
			st.Counts.Verified++
		case models.StatusMismatched:
			st.Counts.Mismatched++
		}

		switch p.Status {
		case models.StatusDeclared, models.StatusVerified:
			st.Collected = st.Collected.Add(p.Amount)
		default:
			st.Outstanding = st.Outstanding.Add(p.Amount)
		}
		if p.Status != models.StatusVerified {
			st.Settled = false
		}
	}
	return st
}
