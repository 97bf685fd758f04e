package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitcollect/internal/models"
)

func participant(name, phone, amount string, status models.Status) models.Participant {
	return models.Participant{Name: name, Phone: phone, Amount: decimal.RequireFromString(amount), Status: status}
}

func TestCalculateOutstanding(t *testing.T) {
	splits := []*models.Split{
		{
			OwnerShare: decimal.RequireFromString("33"),
			Participants: []models.Participant{
				participant("Alice", "911", "34", models.StatusPending),
				participant("Bob", "912", "33", models.StatusVerified),
			},
		},
		{
			OwnerShare: decimal.RequireFromString("10"),
			Participants: []models.Participant{
				participant("Alice", "911", "20", models.StatusCashCodeIssued),
				participant("Charlie", "", "15", models.StatusDeclared),
				participant("Dana", "", "5", models.StatusMismatched),
			},
		},
	}

	out := CalculateOutstanding(splits)

	assert.True(t, out.Pending.Equal(decimal.RequireFromString("54")), "pending = %s", out.Pending)
	assert.True(t, out.Declared.Equal(decimal.RequireFromString("15")), "declared = %s", out.Declared)
	assert.True(t, out.Verified.Equal(decimal.RequireFromString("33")), "verified = %s", out.Verified)
	assert.True(t, out.Mismatched.Equal(decimal.RequireFromString("5")), "mismatched = %s", out.Mismatched)
	assert.True(t, out.OwnShare.Equal(decimal.RequireFromString("43")), "own share = %s", out.OwnShare)

	require.Len(t, out.Dues, 2)
	assert.Equal(t, "Alice", out.Dues[0].Name)
	assert.True(t, out.Dues[0].Amount.Equal(decimal.RequireFromString("54")))
	assert.Equal(t, 2, out.Dues[0].Splits)
	assert.Equal(t, "Dana", out.Dues[1].Name)
}

func TestCalculateOutstandingEmpty(t *testing.T) {
	out := CalculateOutstanding(nil)

	assert.True(t, out.Pending.IsZero())
	assert.True(t, out.OwnShare.IsZero())
	assert.Empty(t, out.Dues)
}

func TestCalculateOutstandingDuesOrderIsDeterministic(t *testing.T) {
	split := &models.Split{OwnerShare: decimal.Zero}
	for _, phone := range []string{"916", "913", "915", "911", "914", "912"} {
		split.Participants = append(split.Participants, participant("Asha", phone, "10", models.StatusPending))
	}
	splits := []*models.Split{split}

	first := CalculateOutstanding(splits).Dues
	require.Len(t, first, 6)
	for i, phone := range []string{"911", "912", "913", "914", "915", "916"} {
		assert.Equal(t, phone, first[i].Phone)
	}

	for range 50 {
		assert.Equal(t, first, CalculateOutstanding(splits).Dues)
	}
}

func TestCalculateOutstandingSkipsZeroDues(t *testing.T) {
	splits := []*models.Split{{
		OwnerShare: decimal.RequireFromString("90"),
		Participants: []models.Participant{
			participant("Asha", "911", "10", models.StatusPending),
			participant("Ravi", "912", "0", models.StatusPending),
		},
	}}

	out := CalculateOutstanding(splits)

	require.Len(t, out.Dues, 1)
	assert.Equal(t, "911", out.Dues[0].Phone)
	assert.True(t, out.Pending.Equal(decimal.RequireFromString("10")))
}
