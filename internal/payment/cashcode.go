package payment

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var cashCodeSpan = big.NewInt(9000)

// NewCashCode returns a random 4-digit code in [1000, 9999].
// Codes only need to be unpredictable, not unique: each is checked against one participant.
func NewCashCode() (string, error) {
	n, err := rand.Int(rand.Reader, cashCodeSpan)
	if err != nil {
		return "", fmt.Errorf("failed to generate cash code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
