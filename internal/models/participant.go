package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is a participant's position in the payment lifecycle.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusCashCodeIssued Status = "CASH_CODE_ISSUED"
	StatusDeclared       Status = "DECLARED"
	StatusVerified       Status = "VERIFIED"
	StatusMismatched     Status = "MISMATCHED"
)

// Terminal reports whether no further transitions leave s.
func (s Status) Terminal() bool {
	return s == StatusVerified || s == StatusMismatched
}

// Method is how a participant says they paid.
type Method string

const (
	MethodUPI          Method = "UPI"
	MethodCash         Method = "CASH"
	MethodOtherDigital Method = "OTHER_DIGITAL"
)

// Digital reports whether m is a method that carries an external reference.
func (m Method) Digital() bool {
	return m == MethodUPI || m == MethodOtherDigital
}

// Participant is one person's owed share within a Split.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// SplitID is the owning split.
	SplitID string

	// Position is the participant's index in the split's list order.
	Position int

	// Name and Phone are copied from the contact when the split is created.
	Name  string
	Phone string

	// Amount is this participant's share. Set once by the allocation engine.
	Amount decimal.Decimal

	Status Status

	// Method is empty until the participant declares a payment or asks to pay cash.
	Method Method

	// Reference is the external transaction reference (UTR), unique across all participants.
	Reference *string

	// CashCode is the one-time code for cash confirmation. Cleared once consumed.
	CashCode *string

	// PaidAt is set when the participant moves to DECLARED.
	PaidAt *time.Time

	UpdatedAt time.Time
}

// ReconciliationRow is one entry of an externally parsed bank ledger.
type ReconciliationRow struct {
	Reference string
	Amount    decimal.Decimal
	Date      string
}
