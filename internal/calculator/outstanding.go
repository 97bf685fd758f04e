package calculator

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitcollect/internal/models"
)

// PersonDue is what one person still owes the collector across all splits.
type PersonDue struct {
	Name   string
	Phone  string
	Amount decimal.Decimal
	Splits int // number of splits with an unsettled share
}

// Outstanding summarizes a collector's splits by payment state.
type Outstanding struct {
	// Pending is owed by participants who have not declared anything yet
	// (including those holding an unconfirmed cash code).
	Pending decimal.Decimal

	// Declared is claimed paid but not yet matched against a bank ledger.
	Declared decimal.Decimal

	// Verified is confirmed by reconciliation.
	Verified decimal.Decimal

	// Mismatched is declared with a reference whose ledger amount differed.
	Mismatched decimal.Decimal

	// OwnShare is the collector's own part of all split totals.
	OwnShare decimal.Decimal

	// Dues lists people with pending or mismatched amounts, largest first.
	Dues []PersonDue
}

// CalculateOutstanding aggregates participant amounts across splits.
//
// People are keyed by phone when present, otherwise by name, since
// participants are copies and carry no contact ID.
func CalculateOutstanding(splits []*models.Split) Outstanding {
	out := Outstanding{
		Pending:    decimal.Zero,
		Declared:   decimal.Zero,
		Verified:   decimal.Zero,
		Mismatched: decimal.Zero,
		OwnShare:   decimal.Zero,
	}
	dues := make(map[string]*PersonDue)

	for _, split := range splits {
		out.OwnShare = out.OwnShare.Add(split.OwnerShare)

		for _, p := range split.Participants {
			switch p.Status {
			case models.StatusPending, models.StatusCashCodeIssued:
				out.Pending = out.Pending.Add(p.Amount)
			case models.StatusDeclared:
				out.Declared = out.Declared.Add(p.Amount)
				continue
			case models.StatusVerified:
				out.Verified = out.Verified.Add(p.Amount)
				continue
			case models.StatusMismatched:
				out.Mismatched = out.Mismatched.Add(p.Amount)
			}

			if p.Amount.IsZero() {
				continue
			}

			key := p.Phone
			if key == "" {
				key = p.Name
			}
			due, exists := dues[key]
			if !exists {
				due = &PersonDue{Name: p.Name, Phone: p.Phone, Amount: decimal.Zero}
				dues[key] = due
			}
			due.Amount = due.Amount.Add(p.Amount)
			due.Splits++
		}
	}

	out.Dues = make([]PersonDue, 0, len(dues))
	for _, due := range dues {
		out.Dues = append(out.Dues, *due)
	}
	slices.SortFunc(out.Dues, func(a, b PersonDue) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Phone, b.Phone)
	})

	return out
}
