// Package reconcile matches bank ledger rows against declared payments.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/metrics"
	"github.com/mmynk/splitcollect/internal/models"
	"github.com/mmynk/splitcollect/internal/payment"
	"github.com/mmynk/splitcollect/internal/storage"
)

// maxAttempts bounds how often one row is re-read after losing a status race.
const maxAttempts = 3

// ParticipantStore is the storage the matcher reads and writes.
type ParticipantStore interface {
	GetParticipantByReference(ctx context.Context, reference string) (*models.Participant, error)
	UpdateParticipant(ctx context.Context, p *models.Participant, expected models.Status) error
}

// Result counts the rows of one batch by classification.
type Result struct {
	Matched    int
	Failed     int
	Duplicates int

	// Rows reports each processed row in input order.
	Rows []RowReport
}

// RowReport is the outcome of a single ledger row.
type RowReport struct {
	Reference     string
	Outcome       payment.Outcome
	ParticipantID string
}

// Matcher applies ledger rows to participants one at a time.
// Each row is committed on its own; there is no batch transaction.
type Matcher struct {
	store ParticipantStore
}

// NewMatcher creates a Matcher backed by store.
func NewMatcher(store ParticipantStore) *Matcher {
	return &Matcher{store: store}
}

// Reconcile processes rows in order. On a persistence failure it stops and
// returns the counts so far together with the error; rows already applied
// stay applied.
func (m *Matcher) Reconcile(ctx context.Context, rows iter.Seq[models.ReconciliationRow]) (Result, error) {
	var result Result
	for row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		report, err := m.apply(ctx, row)
		if err != nil {
			return result, err
		}

		result.Rows = append(result.Rows, report)
		switch report.Outcome {
		case payment.OutcomeMatched:
			result.Matched++
		case payment.OutcomeDuplicate:
			result.Duplicates++
		default:
			result.Failed++
		}
		metrics.ReconcileRows.WithLabelValues(string(report.Outcome)).Inc()
	}
	return result, nil
}

// apply classifies and commits one row.
func (m *Matcher) apply(ctx context.Context, row models.ReconciliationRow) (RowReport, error) {
	report := RowReport{Reference: payment.NormalizeReference(row.Reference)}
	if report.Reference == "" {
		report.Outcome = payment.OutcomeUnknown
		return report, nil
	}

	for range maxAttempts {
		p, err := m.store.GetParticipantByReference(ctx, report.Reference)
		if errors.Is(err, apperrors.ErrNotFound) {
			report.Outcome = payment.OutcomeUnknown
			return report, nil
		}
		if err != nil {
			return report, fmt.Errorf("failed to look up reference %s: %w", report.Reference, err)
		}
		report.ParticipantID = p.ID

		expected := p.Status
		report.Outcome = payment.Reconcile(p, row.Amount)
		if p.Status == expected {
			return report, nil
		}

		err = m.store.UpdateParticipant(ctx, p, expected)
		if errors.Is(err, storage.ErrStatusConflict) {
			continue
		}
		if err != nil {
			return report, fmt.Errorf("failed to record %s for reference %s: %w", report.Outcome, report.Reference, err)
		}
		metrics.ParticipantTransitions.WithLabelValues(string(p.Status)).Inc()
		return report, nil
	}

	return report, fmt.Errorf("%w: reference %s kept changing during reconciliation",
		apperrors.ErrAlreadyDeclared, report.Reference)
}
