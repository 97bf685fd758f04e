package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationMode selects how a split total is divided among participants.
type AllocationMode string

const (
	// ModeSingle means the collector owes the whole total; no participants owe anything.
	ModeSingle AllocationMode = "SINGLE"
	// ModeEqual divides the total equally among participants and the collector.
	ModeEqual AllocationMode = "EQUAL"
	// ModePartition uses caller-supplied per-participant amounts.
	ModePartition AllocationMode = "PARTITION"
)

// Valid reports whether m is a known allocation mode.
func (m AllocationMode) Valid() bool {
	switch m {
	case ModeSingle, ModeEqual, ModePartition:
		return true
	}
	return false
}

// SplitKind distinguishes a multi-participant split from a single payment request.
type SplitKind string

const (
	KindSplit   SplitKind = "SPLIT"
	KindRequest SplitKind = "REQUEST"
)

// Split is an expense owned by a collector and divided among participants.
// Total is fixed at creation and never changes afterward.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// Kind is SPLIT for shared expenses and REQUEST for 1:1 payment requests.
	Kind SplitKind

	// Purpose is the free-text description (the note for requests).
	Purpose string

	// Total is the full expense amount.
	Total decimal.Decimal

	// Mode is the allocation mode used to compute participant amounts.
	Mode AllocationMode

	// OwnerShare is the collector's own part of Total (Total minus all participant amounts).
	OwnerShare decimal.Decimal

	// OwnerID is the collecting user's identifier.
	OwnerID string

	// PayeeVPA and PayeeName identify where participants should pay.
	// Required for requests, optional for splits.
	PayeeVPA  string
	PayeeName string

	// CreatedAt is when the split was created.
	CreatedAt time.Time

	// Participants in list order.
	Participants []Participant
}

// ParticipantSum returns the sum of all participant amounts.
func (s *Split) ParticipantSum() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range s.Participants {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// DraftParticipant is a participant as entered by the collector before allocation.
// Amount is only read in PARTITION mode.
type DraftParticipant struct {
	Name   string `validate:"required,max=100"`
	Phone  string `validate:"omitempty,max=20"`
	Amount decimal.Decimal
}

// DraftSplit carries a not-yet-persisted split from the caller to the orchestrator.
type DraftSplit struct {
	Mode         AllocationMode `validate:"required,oneof=SINGLE EQUAL PARTITION"`
	Total        decimal.Decimal
	Purpose      string             `validate:"required,max=200"`
	PayeeVPA     string             `validate:"omitempty,max=100"`
	PayeeName    string             `validate:"omitempty,max=100"`
	Participants []DraftParticipant `validate:"dive"`
}
