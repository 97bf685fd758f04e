package reconcile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitcollect/internal/models"
)

// ReadLedger parses a bank export with a header row and the columns
// reference, amount, date. Rows that are too short, have a blank reference
// or carry an unparsable or zero amount are skipped.
func ReadLedger(r io.Reader) ([]models.ReconciliationRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []models.ReconciliationRow
	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ledger: %w", err)
		}
		if header {
			header = false
			continue
		}

		row, ok := parseRecord(record)
		if ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func parseRecord(record []string) (models.ReconciliationRow, bool) {
	if len(record) < 3 {
		return models.ReconciliationRow{}, false
	}
	reference := strings.TrimSpace(record[0])
	if reference == "" {
		return models.ReconciliationRow{}, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil || amount.IsZero() {
		return models.ReconciliationRow{}, false
	}
	return models.ReconciliationRow{
		Reference: reference,
		Amount:    amount,
		Date:      strings.TrimSpace(record[2]),
	}, true
}
