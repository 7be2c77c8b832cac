package payment_models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MaxMinorUnits is the largest unit amount the gateway accepts on a line item.
const MaxMinorUnits int64 = 99_999_999

var ErrAmountTooLarge = errors.New("amount too large")

var (
	hundred   = decimal.NewFromInt(100)
	maxMinors = decimal.NewFromInt(MaxMinorUnits)
)

// ToMinorUnits converts a decimal amount to cents, rounding half away from zero.
// Amounts above MaxMinorUnits fail instead of wrapping.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	minor := amount.Mul(hundred).Round(0)
	if minor.GreaterThan(maxMinors) {
		return 0, ErrAmountTooLarge
	}
	return minor.IntPart(), nil
}

func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
