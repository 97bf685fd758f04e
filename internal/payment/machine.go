// Package payment implements the participant payment lifecycle.
//
// The transition functions in this file are pure: they validate the
// participant's current state, mutate it in memory and never touch storage.
// Processor wraps them with load, compare-and-set write and reference
// uniqueness checks.
package payment

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
)

// Outcome classifies one reconciliation attempt against a participant.
type Outcome string

const (
	OutcomeMatched    Outcome = "MATCHED"
	OutcomeMismatched Outcome = "MISMATCHED"
	// OutcomeDuplicate means the participant was already VERIFIED; nothing changes.
	OutcomeDuplicate Outcome = "DUPLICATE"
	// OutcomeRejected means the participant is not awaiting reconciliation.
	OutcomeRejected Outcome = "REJECTED"
	// OutcomeUnknown means no participant holds the row's reference.
	OutcomeUnknown Outcome = "UNKNOWN"
)

// NormalizeReference trims and uppercases a payment reference.
func NormalizeReference(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}

// DeclareDigital records a UPI or other digital payment with its reference.
// PENDING -> DECLARED.
func DeclareDigital(p *models.Participant, method models.Method, reference string, now time.Time) error {
	if !method.Digital() {
		return apperrors.Invalid("method", fmt.Sprintf("%q is not a digital payment method", method))
	}
	ref := NormalizeReference(reference)
	if ref == "" {
		return apperrors.ErrReferenceRequired
	}
	if p.Status != models.StatusPending {
		return fmt.Errorf("%w: participant is %s", apperrors.ErrAlreadyDeclared, p.Status)
	}

	paidAt := now
	p.Method = method
	p.Reference = &ref
	p.PaidAt = &paidAt
	p.Status = models.StatusDeclared
	return nil
}

// RequestCash issues a cash code. PENDING -> CASH_CODE_ISSUED.
func RequestCash(p *models.Participant, code string) error {
	if p.Status != models.StatusPending {
		return fmt.Errorf("%w: participant is %s", apperrors.ErrAlreadyDeclared, p.Status)
	}

	p.Method = models.MethodCash
	p.CashCode = &code
	p.Status = models.StatusCashCodeIssued
	return nil
}

// ConfirmCash consumes the cash code. CASH_CODE_ISSUED -> DECLARED.
// A wrong code leaves the participant untouched.
func ConfirmCash(p *models.Participant, supplied string, now time.Time) error {
	if p.Status != models.StatusCashCodeIssued {
		return fmt.Errorf("%w: participant is %s", apperrors.ErrAlreadyDeclared, p.Status)
	}
	if p.CashCode == nil || subtle.ConstantTimeCompare([]byte(*p.CashCode), []byte(supplied)) != 1 {
		return apperrors.ErrInvalidCode
	}

	paidAt := now
	p.CashCode = nil
	p.PaidAt = &paidAt
	p.Status = models.StatusDeclared
	return nil
}

// Reconcile applies one ledger amount to a participant holding the matching reference.
// DECLARED -> VERIFIED when amounts are decimal-equal, DECLARED -> MISMATCHED otherwise.
// VERIFIED participants report a duplicate and stay VERIFIED.
func Reconcile(p *models.Participant, amount decimal.Decimal) Outcome {
	switch p.Status {
	case models.StatusVerified:
		return OutcomeDuplicate
	case models.StatusDeclared:
		if p.Amount.Equal(amount) {
			p.Status = models.StatusVerified
			return OutcomeMatched
		}
		p.Status = models.StatusMismatched
		return OutcomeMismatched
	default:
		return OutcomeRejected
	}
}
