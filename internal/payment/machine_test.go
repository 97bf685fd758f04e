package payment

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func pending(amount string) *models.Participant {
	return &models.Participant{
		ID:     "p1",
		Name:   "Asha",
		Amount: decimal.RequireFromString(amount),
		Status: models.StatusPending,
	}
}

func TestDeclareDigital(t *testing.T) {
	tests := []struct {
		name      string
		status    models.Status
		method    models.Method
		reference string
		wantErr   error
		wantRef   string
	}{
		{"upi", models.StatusPending, models.MethodUPI, "  utr123 ", nil, "UTR123"},
		{"other digital", models.StatusPending, models.MethodOtherDigital, "Txn-9", nil, "TXN-9"},
		{"blank reference", models.StatusPending, models.MethodUPI, "   ", apperrors.ErrReferenceRequired, ""},
		{"cash is not digital", models.StatusPending, models.MethodCash, "X", apperrors.ErrValidation, ""},
		{"already declared", models.StatusDeclared, models.MethodUPI, "X", apperrors.ErrAlreadyDeclared, ""},
		{"cash code issued", models.StatusCashCodeIssued, models.MethodUPI, "X", apperrors.ErrAlreadyDeclared, ""},
		{"verified", models.StatusVerified, models.MethodUPI, "X", apperrors.ErrAlreadyDeclared, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pending("10")
			p.Status = tt.status

			err := DeclareDigital(p, tt.method, tt.reference, testNow)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, p.Status, "failed transition must not change status")
				assert.Nil(t, p.Reference)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, models.StatusDeclared, p.Status)
			assert.Equal(t, tt.method, p.Method)
			require.NotNil(t, p.Reference)
			assert.Equal(t, tt.wantRef, *p.Reference)
			require.NotNil(t, p.PaidAt)
			assert.True(t, p.PaidAt.Equal(testNow))
		})
	}
}

func TestBlankReferenceIsValidationError(t *testing.T) {
	p := pending("10")
	err := DeclareDigital(p, models.MethodUPI, "", testNow)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCashRoundTrip(t *testing.T) {
	p := pending("250")

	require.NoError(t, RequestCash(p, "4821"))
	assert.Equal(t, models.StatusCashCodeIssued, p.Status)
	assert.Equal(t, models.MethodCash, p.Method)

	err := ConfirmCash(p, "0000", testNow)
	require.ErrorIs(t, err, apperrors.ErrInvalidCode)
	assert.Equal(t, models.StatusCashCodeIssued, p.Status)
	require.NotNil(t, p.CashCode)
	assert.Equal(t, "4821", *p.CashCode)

	require.NoError(t, ConfirmCash(p, "4821", testNow))
	assert.Equal(t, models.StatusDeclared, p.Status)
	assert.Nil(t, p.CashCode, "code is consumed")
	require.NotNil(t, p.PaidAt)

	// A consumed code cannot be used again.
	err = ConfirmCash(p, "4821", testNow)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDeclared)
}

func TestRequestCashRequiresPending(t *testing.T) {
	for _, status := range []models.Status{
		models.StatusCashCodeIssued,
		models.StatusDeclared,
		models.StatusVerified,
		models.StatusMismatched,
	} {
		p := pending("10")
		p.Status = status
		err := RequestCash(p, "1234")
		if !errors.Is(err, apperrors.ErrAlreadyDeclared) {
			t.Errorf("RequestCash from %s: got %v, want ErrAlreadyDeclared", status, err)
		}
		if p.CashCode != nil {
			t.Errorf("RequestCash from %s: code was set", status)
		}
	}
}

func TestConfirmCashFromPending(t *testing.T) {
	p := pending("10")
	err := ConfirmCash(p, "1234", testNow)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDeclared)
	assert.Equal(t, models.StatusPending, p.Status)
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		status     models.Status
		amount     string
		ledger     string
		want       Outcome
		wantStatus models.Status
	}{
		{"declared equal", models.StatusDeclared, "50.00", "50", OutcomeMatched, models.StatusVerified},
		{"declared differs", models.StatusDeclared, "200", "199", OutcomeMismatched, models.StatusMismatched},
		{"already verified", models.StatusVerified, "50", "50", OutcomeDuplicate, models.StatusVerified},
		{"pending", models.StatusPending, "50", "50", OutcomeRejected, models.StatusPending},
		{"cash code issued", models.StatusCashCodeIssued, "50", "50", OutcomeRejected, models.StatusCashCodeIssued},
		{"mismatched is terminal", models.StatusMismatched, "50", "50", OutcomeRejected, models.StatusMismatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pending(tt.amount)
			p.Status = tt.status

			got := Reconcile(p, decimal.RequireFromString(tt.ledger))
			if got != tt.want {
				t.Errorf("Reconcile() = %s, want %s", got, tt.want)
			}
			if p.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", p.Status, tt.wantStatus)
			}
		})
	}
}

func TestNormalizeReference(t *testing.T) {
	assert.Equal(t, "ABC123", NormalizeReference(" abc123\t"))
	assert.Equal(t, "", NormalizeReference("  "))
}

func TestNewCashCode(t *testing.T) {
	for range 200 {
		code, err := NewCashCode()
		require.NoError(t, err)
		require.Len(t, code, 4)
		assert.GreaterOrEqual(t, code, "1000")
		assert.LessOrEqual(t, code, "9999")
	}
}
