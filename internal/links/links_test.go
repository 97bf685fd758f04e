package links

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitcollect/internal/apperrors"
)

func TestUPILink(t *testing.T) {
	b := NewBuilder("https://pay.example.com/", "INR", 2)

	tests := []struct {
		app  App
		want string
	}{
		{AppAny, "upi://pay?pa=owner@okaxis&pn=Owner+Name&am=33.50&cu=INR&tn=Dinner+%26+drinks"},
		{AppGPay, "tez://upi/pay?pa=owner@okaxis&pn=Owner+Name&am=33.50&cu=INR&tn=Dinner+%26+drinks"},
		{AppPhonePe, "phonepe://pay?pa=owner@okaxis&pn=Owner+Name&am=33.50&cu=INR&tn=Dinner+%26+drinks"},
		{AppPaytm, "paytmmp://pay?pa=owner@okaxis&pn=Owner+Name&am=33.50&cu=INR&tn=Dinner+%26+drinks"},
	}
	for _, tt := range tests {
		t.Run(string(tt.app), func(t *testing.T) {
			got, err := b.UPILink(tt.app, "owner@okaxis", "Owner Name", decimal.RequireFromString("33.5"), "Dinner & drinks")
			require.NoError(t, err)
			// QueryEscape encodes '@' as %40
			assert.Equal(t, strings.Replace(tt.want, "owner@okaxis", "owner%40okaxis", 1), got)
		})
	}
}

func TestUPILinkRejectsBadVPA(t *testing.T) {
	b := NewBuilder("https://pay.example.com", "INR", 2)
	_, err := b.UPILink(AppAny, "not-a-vpa", "Owner", decimal.NewFromInt(1), "x")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUPILinks(t *testing.T) {
	b := NewBuilder("https://pay.example.com", "INR", 2)
	got, err := b.UPILinks("owner@okaxis", "Owner", decimal.NewFromInt(10), "Cab")
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.True(t, strings.HasPrefix(got[AppGPay], "tez://upi/pay?"))
}

func TestValidVPA(t *testing.T) {
	assert.True(t, ValidVPA("user.name@okaxis"))
	assert.True(t, ValidVPA(" ab@ybl "))
	assert.False(t, ValidVPA("a@ybl"))
	assert.False(t, ValidVPA("user@bank1"))
	assert.False(t, ValidVPA("userbank"))
}

func TestCollectURL(t *testing.T) {
	b := NewBuilder("https://pay.example.com/", "INR", 2)
	assert.Equal(t, "https://pay.example.com/pay/collect/abc-123", b.CollectURL("abc-123"))
}

func TestWhatsAppURL(t *testing.T) {
	assert.Equal(t, "https://wa.me/919800000001?text=Hi%20there%0APay", WhatsAppURL("+91 98000-00001", "Hi there\nPay"))
	assert.Equal(t, "https://wa.me/?text=Hi", WhatsAppURL("", "Hi"))
}

func TestCompose(t *testing.T) {
	b := NewBuilder("https://pay.example.com", "INR", 2)
	msg := b.Compose(Message{
		Purpose: "Dinner",
		Amount:  decimal.RequireFromString("33.3"),
		Date:    time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		Link:    "https://pay.example.com/pay/collect/p1",
	})
	assert.Equal(t, "Dinner • 7 Mar 2026\n\nAmount: ₹33.30\nPay here:\nhttps://pay.example.com/pay/collect/p1", msg)

	withRef := b.Compose(Message{Purpose: "Cab", Amount: decimal.NewFromInt(5), Reference: "UTR1", Link: "L"})
	assert.Equal(t, "Cab\n\nAmount: ₹5.00\nReference: UTR1\nPay here:\nL", withRef)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "USD 1.50", NewBuilder("", "USD", 2).FormatAmount(decimal.RequireFromString("1.5")))
	assert.Equal(t, "₹100", NewBuilder("", "INR", 0).FormatAmount(decimal.NewFromInt(100)))
}
