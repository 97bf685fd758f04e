package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
)

// Share is one participant's computed amount.
type Share struct {
	Name   string
	Phone  string
	Amount decimal.Decimal
}

// Allocation is the result of dividing a total under one mode.
type Allocation struct {
	Mode       models.AllocationMode
	Total      decimal.Decimal
	Shares     []Share
	OwnerShare decimal.Decimal
}

// Sum returns the participant shares plus the owner's share.
// For any allocation returned by Allocate it equals Total.
func (a *Allocation) Sum() decimal.Decimal {
	sum := a.OwnerShare
	for _, s := range a.Shares {
		sum = sum.Add(s.Amount)
	}
	return sum
}

// Allocate divides total among participants according to mode.
//
// precision is the number of decimal places of the smallest currency unit.
// All arithmetic happens on integer minor units, so the same input always
// yields the same output.
//
//   - SINGLE: no shares; the owner keeps the whole total.
//   - EQUAL: total / (k+1) in minor units, the leftover units go one at a
//     time to participants in list order; the owner gets what is left.
//   - PARTITION: amounts are taken as given; their sum must not exceed total.
func Allocate(total decimal.Decimal, mode models.AllocationMode, participants []models.DraftParticipant, precision int32) (*Allocation, error) {
	if precision < 0 {
		return nil, fmt.Errorf("precision cannot be negative: %d", precision)
	}
	if total.IsNegative() {
		return nil, apperrors.Invalid("total", "total cannot be negative")
	}
	if !fitsPrecision(total, precision) {
		return nil, apperrors.Invalid("total", fmt.Sprintf("total has more than %d decimal places", precision))
	}

	switch mode {
	case models.ModeSingle:
		return &Allocation{Mode: mode, Total: total, Shares: []Share{}, OwnerShare: total}, nil
	case models.ModeEqual:
		return equal(total, participants, precision), nil
	case models.ModePartition:
		return partition(total, participants, precision)
	default:
		return nil, apperrors.Invalid("mode", fmt.Sprintf("unknown allocation mode %q", mode))
	}
}

func equal(total decimal.Decimal, participants []models.DraftParticipant, precision int32) *Allocation {
	alloc := &Allocation{Mode: models.ModeEqual, Total: total, Shares: make([]Share, len(participants))}

	units := total.Shift(precision)
	holders := decimal.NewFromInt(int64(len(participants) + 1))
	base, residual := units.QuoRem(holders, 0)
	// residual < k+1, so every leftover unit lands on a participant
	extra := residual.IntPart()

	sum := decimal.Zero
	for i, p := range participants {
		share := base
		if int64(i) < extra {
			share = share.Add(decimal.NewFromInt(1))
		}
		amount := share.Shift(-precision)
		alloc.Shares[i] = Share{Name: p.Name, Phone: p.Phone, Amount: amount}
		sum = sum.Add(amount)
	}

	alloc.OwnerShare = total.Sub(sum)
	return alloc
}

func partition(total decimal.Decimal, participants []models.DraftParticipant, precision int32) (*Allocation, error) {
	alloc := &Allocation{Mode: models.ModePartition, Total: total, Shares: make([]Share, len(participants))}

	sum := decimal.Zero
	for i, p := range participants {
		if p.Amount.IsNegative() {
			return nil, apperrors.Invalid(fmt.Sprintf("participants[%d].amount", i), "amount cannot be negative")
		}
		if !fitsPrecision(p.Amount, precision) {
			return nil, apperrors.Invalid(fmt.Sprintf("participants[%d].amount", i),
				fmt.Sprintf("amount has more than %d decimal places", precision))
		}
		alloc.Shares[i] = Share{Name: p.Name, Phone: p.Phone, Amount: p.Amount}
		sum = sum.Add(p.Amount)
	}

	if sum.GreaterThan(total) {
		return nil, fmt.Errorf("%w: %s allocated of %s", apperrors.ErrAllocationOverflow, sum.String(), total.String())
	}

	alloc.OwnerShare = total.Sub(sum)
	return alloc, nil
}

func fitsPrecision(d decimal.Decimal, precision int32) bool {
	return d.Shift(precision).IsInteger()
}
