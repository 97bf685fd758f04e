// Package links builds the URLs and messages a collector shares with participants.
// It never sends anything; delivery is up to the client.
package links

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitcollect/internal/apperrors"
)

// App selects which UPI app a deep link opens.
type App string

const (
	AppAny     App = "ANY"
	AppGPay    App = "GPAY"
	AppPhonePe App = "PHONEPE"
	AppPaytm   App = "PAYTM"
)

var vpaPattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)

// ValidVPA reports whether vpa looks like a UPI virtual payment address (name@bank).
func ValidVPA(vpa string) bool {
	return vpaPattern.MatchString(strings.TrimSpace(vpa))
}

// Builder renders links for one deployment.
type Builder struct {
	appURL    string
	currency  string
	precision int32
}

// NewBuilder creates a Builder. appURL is the public base URL of the web client.
func NewBuilder(appURL, currency string, precision int32) *Builder {
	return &Builder{
		appURL:    strings.TrimRight(appURL, "/"),
		currency:  currency,
		precision: precision,
	}
}

// CollectURL is the page a participant opens to pay or declare.
func (b *Builder) CollectURL(participantID string) string {
	return b.appURL + "/pay/collect/" + url.PathEscape(participantID)
}

// UPILink builds a deep link that opens app with the payment prefilled.
func (b *Builder) UPILink(app App, payeeVPA, payeeName string, amount decimal.Decimal, note string) (string, error) {
	if !ValidVPA(payeeVPA) {
		return "", apperrors.Invalid("payee_vpa", fmt.Sprintf("%q is not a valid UPI address", payeeVPA))
	}

	var base string
	switch app {
	case AppGPay:
		base = "tez://upi/pay"
	case AppPhonePe:
		base = "phonepe://pay"
	case AppPaytm:
		base = "paytmmp://pay"
	default:
		base = "upi://pay"
	}

	// url.Values sorts keys; UPI links keep the pa, pn, am, cu, tn order.
	params := [][2]string{
		{"pa", strings.TrimSpace(payeeVPA)},
		{"pn", payeeName},
		{"am", amount.StringFixed(b.precision)},
		{"cu", b.currency},
		{"tn", note},
	}
	var sb strings.Builder
	sb.WriteString(base)
	for i, kv := range params {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(kv[0])
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv[1]))
	}
	return sb.String(), nil
}

// UPILinks builds deep links for every supported app.
func (b *Builder) UPILinks(payeeVPA, payeeName string, amount decimal.Decimal, note string) (map[App]string, error) {
	out := make(map[App]string, 4)
	for _, app := range []App{AppAny, AppGPay, AppPhonePe, AppPaytm} {
		link, err := b.UPILink(app, payeeVPA, payeeName, amount, note)
		if err != nil {
			return nil, err
		}
		out[app] = link
	}
	return out, nil
}

// WhatsAppURL opens a chat with phone and text prefilled. Without a phone
// number WhatsApp asks the user to pick a contact.
func WhatsAppURL(phone, text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits + "?text=" + encoded
}

// Message is the content of a payment reminder.
type Message struct {
	Purpose   string
	Amount    decimal.Decimal
	Date      time.Time
	Reference string
	Link      string
}

// Compose renders m as the text sent to a participant.
func (b *Builder) Compose(m Message) string {
	var sb strings.Builder
	sb.WriteString(m.Purpose)
	if !m.Date.IsZero() {
		sb.WriteString(" • ")
		sb.WriteString(m.Date.Format("2 Jan 2006"))
	}
	sb.WriteString("\n\nAmount: ")
	sb.WriteString(b.FormatAmount(m.Amount))
	sb.WriteByte('\n')
	if m.Reference != "" {
		sb.WriteString("Reference: ")
		sb.WriteString(m.Reference)
		sb.WriteByte('\n')
	}
	sb.WriteString("Pay here:\n")
	sb.WriteString(m.Link)
	return sb.String()
}

// FormatAmount renders amount with the currency symbol, or the code when
// no symbol is known.
func (b *Builder) FormatAmount(amount decimal.Decimal) string {
	value := amount.StringFixed(b.precision)
	if b.currency == "INR" {
		return "₹" + value
	}
	return b.currency + " " + value
}
