package reconcile

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestReadLedger(t *testing.T) {
	input := `reference,amount,date
UTR001,250.00,2026-03-01
 utr002 , 99.5 ,2026-03-02
,10,2026-03-03
UTR004,abc,2026-03-04
UTR005,0,2026-03-05
UTR006,12
UTR007,-40,2026-03-07,extra
`
	rows, err := ReadLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadLedger failed: %v", err)
	}

	want := []struct {
		ref    string
		amount string
		date   string
	}{
		{"UTR001", "250", "2026-03-01"},
		{"utr002", "99.5", "2026-03-02"},
		{"UTR007", "-40", "2026-03-07"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(rows), len(want), rows)
	}
	for i, w := range want {
		if rows[i].Reference != w.ref {
			t.Errorf("row %d: reference = %q, want %q", i, rows[i].Reference, w.ref)
		}
		if !rows[i].Amount.Equal(decimal.RequireFromString(w.amount)) {
			t.Errorf("row %d: amount = %s, want %s", i, rows[i].Amount, w.amount)
		}
		if rows[i].Date != w.date {
			t.Errorf("row %d: date = %q, want %q", i, rows[i].Date, w.date)
		}
	}
}

func TestReadLedgerEmpty(t *testing.T) {
	rows, err := ReadLedger(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadLedger failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
