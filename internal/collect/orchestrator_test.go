package collect

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
	"github.com/mmynk/splitcollect/internal/payment"
	"github.com/mmynk/splitcollect/internal/storage/sqlite"
)

func setup(t *testing.T) (*Orchestrator, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, 2), store
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateSplitEqual(t *testing.T) {
	o, store := setup(t)
	ctx := context.Background()

	id, err := o.CreateSplit(ctx, "owner-1", models.DraftSplit{
		Mode:    models.ModeEqual,
		Total:   d("100"),
		Purpose: "  Dinner ",
		Participants: []models.DraftParticipant{
			{Name: "Asha", Phone: "919800000001"},
			{Name: " Ravi "},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	split, err := store.GetSplit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dinner", split.Purpose)
	assert.Equal(t, models.KindSplit, split.Kind)
	assert.True(t, split.OwnerShare.Equal(d("33.33")), "owner share %s", split.OwnerShare)
	require.Len(t, split.Participants, 2)
	assert.Equal(t, "Asha", split.Participants[0].Name)
	assert.True(t, split.Participants[0].Amount.Equal(d("33.34")))
	assert.Equal(t, "Ravi", split.Participants[1].Name)
	assert.True(t, split.Participants[1].Amount.Equal(d("33.33")))
	assert.True(t, split.ParticipantSum().Add(split.OwnerShare).Equal(split.Total))
	for _, p := range split.Participants {
		assert.Equal(t, models.StatusPending, p.Status)
	}
}

func TestCreateSplitValidation(t *testing.T) {
	o, store := setup(t)
	ctx := context.Background()

	valid := func() models.DraftSplit {
		return models.DraftSplit{
			Mode:         models.ModeEqual,
			Total:        d("90"),
			Purpose:      "Cab",
			Participants: []models.DraftParticipant{{Name: "Asha"}},
		}
	}

	tests := []struct {
		name    string
		owner   string
		mutate  func(*models.DraftSplit)
		wantErr error
		field   string
	}{
		{"blank owner", " ", func(*models.DraftSplit) {}, apperrors.ErrValidation, "owner_id"},
		{"blank purpose", "o", func(s *models.DraftSplit) { s.Purpose = "  " }, apperrors.ErrValidation, "purpose"},
		{"unknown mode", "o", func(s *models.DraftSplit) { s.Mode = "THIRDS" }, apperrors.ErrValidation, "mode"},
		{"blank participant name", "o", func(s *models.DraftSplit) {
			s.Participants = append(s.Participants, models.DraftParticipant{Name: " "})
		}, apperrors.ErrValidation, "participants[1].name"},
		{"no participants", "o", func(s *models.DraftSplit) { s.Participants = nil }, apperrors.ErrValidation, "participants"},
		{"negative total", "o", func(s *models.DraftSplit) { s.Total = d("-1") }, apperrors.ErrValidation, "total"},
		{"too precise", "o", func(s *models.DraftSplit) { s.Total = d("1.005") }, apperrors.ErrValidation, "total"},
		{"partition overflow", "o", func(s *models.DraftSplit) {
			s.Mode = models.ModePartition
			s.Total = d("100")
			s.Participants = []models.DraftParticipant{{Name: "A", Amount: d("60")}, {Name: "B", Amount: d("50")}}
		}, apperrors.ErrAllocationOverflow, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := valid()
			tt.mutate(&draft)

			_, err := o.CreateSplit(ctx, tt.owner, draft)
			require.ErrorIs(t, err, tt.wantErr)

			var ve *apperrors.ValidationError
			if tt.field != "" {
				require.True(t, errors.As(err, &ve), "expected *ValidationError, got %T", err)
				assert.Equal(t, tt.field, ve.Field)
			}
		})
	}

	splits, err := store.ListSplitsByOwner(ctx, "o")
	require.NoError(t, err)
	assert.Empty(t, splits, "rejected drafts must not be persisted")
}

func TestCreateSplitSingleIgnoresParticipants(t *testing.T) {
	o, store := setup(t)
	ctx := context.Background()

	id, err := o.CreateSplit(ctx, "owner-1", models.DraftSplit{
		Mode:         models.ModeSingle,
		Total:        d("45.50"),
		Purpose:      "Lunch",
		Participants: []models.DraftParticipant{{Name: "Asha"}},
	})
	require.NoError(t, err)

	split, err := store.GetSplit(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, split.Participants)
	assert.True(t, split.OwnerShare.Equal(d("45.50")))
}

func TestCreateSingleRequest(t *testing.T) {
	o, store := setup(t)
	ctx := context.Background()

	input := RequestInput{
		Name:      "Asha",
		Phone:     "919800000001",
		Amount:    d("250"),
		Note:      "Concert tickets",
		PayeeVPA:  "owner@upi",
		PayeeName: "Owner",
	}
	id, err := o.CreateSingleRequest(ctx, "owner-1", input)
	require.NoError(t, err)

	split, err := store.GetSplit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.KindRequest, split.Kind)
	assert.Equal(t, "Concert tickets", split.Purpose)
	assert.Equal(t, "owner@upi", split.PayeeVPA)
	assert.True(t, split.Total.Equal(d("250")))
	assert.True(t, split.OwnerShare.IsZero())
	require.Len(t, split.Participants, 1)
	assert.True(t, split.Participants[0].Amount.Equal(d("250")))
	assert.Equal(t, models.StatusPending, split.Participants[0].Status)

	t.Run("rejects invalid input", func(t *testing.T) {
		cases := map[string]func(*RequestInput){
			"amount":    func(in *RequestInput) { in.Amount = decimal.Zero },
			"name":      func(in *RequestInput) { in.Name = "" },
			"note":      func(in *RequestInput) { in.Note = " " },
			"payeevpa":  func(in *RequestInput) { in.PayeeVPA = "" },
			"payeename": func(in *RequestInput) { in.PayeeName = "" },
		}
		for field, mutate := range cases {
			in := input
			mutate(&in)
			_, err := o.CreateSingleRequest(ctx, "owner-1", in)

			var ve *apperrors.ValidationError
			if assert.True(t, errors.As(err, &ve), "%s: got %v", field, err) {
				assert.Equal(t, field, ve.Field)
			}
		}
	})
}

func TestGetStatusIsReadOnly(t *testing.T) {
	o, store := setup(t)
	ctx := context.Background()

	id, err := o.CreateSplit(ctx, "owner-1", models.DraftSplit{
		Mode:    models.ModePartition,
		Total:   d("100"),
		Purpose: "Groceries",
		Participants: []models.DraftParticipant{
			{Name: "Asha", Amount: d("40")},
			{Name: "Ravi", Amount: d("30")},
		},
	})
	require.NoError(t, err)

	first, err := o.GetStatus(ctx, id)
	require.NoError(t, err)

	_, err = payment.NewProcessor(store).DeclareDigital(ctx, first.Split.Participants[0].ID, models.MethodUPI, "utr-9")
	require.NoError(t, err)

	second, err := o.GetStatus(ctx, id)
	require.NoError(t, err)
	third, err := o.GetStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, second, third)

	assert.Equal(t, Counts{Pending: 1, Declared: 1}, second.Counts)
	assert.True(t, second.Collected.Equal(d("40")))
	assert.True(t, second.Outstanding.Equal(d("30")))
	assert.False(t, second.Settled)

	_, err = o.GetStatus(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	o, store := setup(t)

	alloc, err := o.Preview(models.DraftSplit{
		Mode:         models.ModeEqual,
		Total:        d("100"),
		Purpose:      "Preview",
		Participants: []models.DraftParticipant{{Name: "A"}, {Name: "B"}},
	})
	require.NoError(t, err)
	assert.True(t, alloc.Sum().Equal(d("100")))

	splits, err := store.ListSplitsByOwner(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, splits)
}

func TestListSplitsAndSummary(t *testing.T) {
	o, _ := setup(t)
	ctx := context.Background()

	_, err := o.CreateSplit(ctx, "owner-1", models.DraftSplit{
		Mode:         models.ModeEqual,
		Total:        d("30"),
		Purpose:      "Coffee",
		Participants: []models.DraftParticipant{{Name: "Asha", Phone: "1"}, {Name: "Ravi", Phone: "2"}},
	})
	require.NoError(t, err)
	_, err = o.CreateSingleRequest(ctx, "owner-1", RequestInput{
		Name: "Asha", Phone: "1", Amount: d("5"), Note: "Snacks", PayeeVPA: "o@upi", PayeeName: "O",
	})
	require.NoError(t, err)

	statuses, err := o.ListSplits(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, statuses, 2)

	summary, err := o.Summary(ctx, "owner-1")
	require.NoError(t, err)
	assert.True(t, summary.Pending.Equal(d("25")), "pending %s", summary.Pending)
	assert.True(t, summary.OwnShare.Equal(d("10")))
	require.NotEmpty(t, summary.Dues)
	assert.Equal(t, "Asha", summary.Dues[0].Name)
	assert.True(t, summary.Dues[0].Amount.Equal(d("15")))
	assert.Equal(t, 2, summary.Dues[0].Splits)
}
