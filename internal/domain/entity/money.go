package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
)

// MaxDecimalPlaces defines the number of decimal places stored for money amounts
const MaxDecimalPlaces = 2

// ParseAmount parses a decimal amount and rounds it to the stored precision.
// Empty, malformed and negative values are invalid requests.
func ParseAmount(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", errs.ErrInvalidRequest)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", errs.ErrInvalidRequest, amount)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must not be negative", errs.ErrInvalidRequest)
	}
	return NormalizeAmount(d), nil
}

// NormalizeAmount rounds to the stored precision
func NormalizeAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(MaxDecimalPlaces)
}

// FormatAmount renders an amount with exactly two decimal places
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(MaxDecimalPlaces)
}
