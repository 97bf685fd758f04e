package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
)

func people(names ...string) []models.DraftParticipant {
	out := make([]models.DraftParticipant, len(names))
	for i, n := range names {
		out[i] = models.DraftParticipant{Name: n, Phone: "91000000000" + n[:1]}
	}
	return out
}

func withAmounts(amounts ...string) []models.DraftParticipant {
	out := make([]models.DraftParticipant, len(amounts))
	for i, a := range amounts {
		out[i] = models.DraftParticipant{Name: string(rune('A' + i)), Amount: decimal.RequireFromString(a)}
	}
	return out
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		mode         models.AllocationMode
		participants []models.DraftParticipant
		precision    int32
		wantShares   []string
		wantOwner    string
		wantErr      error
	}{
		{
			name:         "equal whole units, owner included",
			total:        "100",
			mode:         models.ModeEqual,
			participants: people("Alice", "Bob"),
			precision:    0,
			wantShares:   []string{"34", "33"},
			wantOwner:    "33",
		},
		{
			name:         "equal in cents gives leftover cent to first participant",
			total:        "100",
			mode:         models.ModeEqual,
			participants: people("Alice", "Bob"),
			precision:    2,
			wantShares:   []string{"33.34", "33.33"},
			wantOwner:    "33.33",
		},
		{
			name:         "equal with two leftover units",
			total:        "0.06",
			mode:         models.ModeEqual,
			participants: people("Alice", "Bob", "Charlie"),
			precision:    2,
			wantShares:   []string{"0.02", "0.02", "0.01"},
			wantOwner:    "0.01",
		},
		{
			name:         "equal with no participants leaves everything to owner",
			total:        "42.50",
			mode:         models.ModeEqual,
			participants: nil,
			precision:    2,
			wantShares:   []string{},
			wantOwner:    "42.5",
		},
		{
			name:         "equal zero total",
			total:        "0",
			mode:         models.ModeEqual,
			participants: people("Alice"),
			precision:    2,
			wantShares:   []string{"0"},
			wantOwner:    "0",
		},
		{
			name:         "single ignores participants",
			total:        "250",
			mode:         models.ModeSingle,
			participants: people("Alice", "Bob"),
			precision:    2,
			wantShares:   []string{},
			wantOwner:    "250",
		},
		{
			name:         "partition owner keeps remainder",
			total:        "100",
			mode:         models.ModePartition,
			participants: withAmounts("60", "25.50"),
			precision:    2,
			wantShares:   []string{"60", "25.5"},
			wantOwner:    "14.5",
		},
		{
			name:         "partition exact sum leaves owner zero",
			total:        "100",
			mode:         models.ModePartition,
			participants: withAmounts("60", "40"),
			precision:    2,
			wantShares:   []string{"60", "40"},
			wantOwner:    "0",
		},
		{
			name:         "partition overage is rejected",
			total:        "100",
			mode:         models.ModePartition,
			participants: withAmounts("60", "50"),
			precision:    2,
			wantErr:      apperrors.ErrAllocationOverflow,
		},
		{
			name:         "partition negative amount",
			total:        "100",
			mode:         models.ModePartition,
			participants: withAmounts("-1"),
			precision:    2,
			wantErr:      apperrors.ErrValidation,
		},
		{
			name:         "partition amount finer than currency unit",
			total:        "100",
			mode:         models.ModePartition,
			participants: withAmounts("10.005"),
			precision:    2,
			wantErr:      apperrors.ErrValidation,
		},
		{
			name:      "negative total",
			total:     "-5",
			mode:      models.ModeEqual,
			precision: 2,
			wantErr:   apperrors.ErrValidation,
		},
		{
			name:      "total finer than currency unit",
			total:     "10.5",
			mode:      models.ModeEqual,
			precision: 0,
			wantErr:   apperrors.ErrValidation,
		},
		{
			name:      "unknown mode",
			total:     "10",
			mode:      models.AllocationMode("PERCENT"),
			precision: 2,
			wantErr:   apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			alloc, err := Allocate(total, tt.mode, tt.participants, tt.precision)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Allocate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Allocate() unexpected error: %v", err)
			}

			if len(alloc.Shares) != len(tt.wantShares) {
				t.Fatalf("got %d shares, want %d", len(alloc.Shares), len(tt.wantShares))
			}
			for i, want := range tt.wantShares {
				if !alloc.Shares[i].Amount.Equal(decimal.RequireFromString(want)) {
					t.Errorf("share[%d] = %s, want %s", i, alloc.Shares[i].Amount, want)
				}
			}
			if !alloc.OwnerShare.Equal(decimal.RequireFromString(tt.wantOwner)) {
				t.Errorf("owner share = %s, want %s", alloc.OwnerShare, tt.wantOwner)
			}
			if !alloc.Sum().Equal(total) {
				t.Errorf("shares + owner = %s, want %s", alloc.Sum(), total)
			}
		})
	}
}

func TestAllocateEqualReconstructsTotal(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for _, precision := range []int32{0, 2} {
		for cents := int64(0); cents <= 2000; cents += 37 {
			total := decimal.New(cents, -precision)
			for k := 0; k <= len(names); k++ {
				alloc, err := Allocate(total, models.ModeEqual, people(names[:k]...), precision)
				if err != nil {
					t.Fatalf("Allocate(%s, k=%d) error: %v", total, k, err)
				}
				if !alloc.Sum().Equal(total) {
					t.Fatalf("Allocate(%s, k=%d): sum %s != total", total, k, alloc.Sum())
				}
				// no participant is ever more than one unit above another
				unit := decimal.New(1, -precision)
				for _, s := range alloc.Shares {
					if s.Amount.Sub(alloc.OwnerShare).GreaterThan(unit) || s.Amount.LessThan(alloc.OwnerShare) {
						t.Fatalf("Allocate(%s, k=%d): share %s too far from owner %s", total, k, s.Amount, alloc.OwnerShare)
					}
				}
			}
		}
	}
}

func TestAllocateIsDeterministic(t *testing.T) {
	total := decimal.RequireFromString("1000.01")
	ps := people("Alice", "Bob", "Charlie")

	first, err := Allocate(total, models.ModeEqual, ps, 2)
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}
	for i := 0; i < 50; i++ {
		again, err := Allocate(total, models.ModeEqual, ps, 2)
		if err != nil {
			t.Fatalf("Allocate() error: %v", err)
		}
		for j := range first.Shares {
			if first.Shares[j].Amount.String() != again.Shares[j].Amount.String() {
				t.Fatalf("run %d share %d: %s != %s", i, j, again.Shares[j].Amount, first.Shares[j].Amount)
			}
		}
	}
}
