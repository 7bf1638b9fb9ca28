package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Monetary constants
const (
	// Scale is the number of fractional digits kept for every amount and balance.
	Scale = 2

	MaxAmount      = "999999.99"
	InitialBalance = "1000.00"

	// MaxBalanceDigits bounds the integer digits of a stored balance.
	MaxBalanceDigits = 30

	maxAmountDigits = 6
)

var (
	maxAmount      = decimal.RequireFromString(MaxAmount)
	initialBalance = decimal.RequireFromString(InitialBalance)
)

// DefaultBalance returns the balance a fresh ledger starts with.
func DefaultBalance() decimal.Decimal {
	return initialBalance
}

// Round rounds d to two decimal places, ties away from zero.
// Callers bound the magnitude of d first; see ValidateAmount and ParseBalance.
func Round(d decimal.Decimal) decimal.Decimal {
	if r, ok := reduce(d, MaxBalanceDigits); ok {
		d = r
	}
	return d.Round(Scale)
}

// integerDigits returns the number of digits before the decimal point of a
// non-zero d, which is zero or negative for values below 1.
func integerDigits(d decimal.Decimal) int64 {
	coefficient := new(big.Int).Abs(d.Coefficient())
	return int64(len(coefficient.String())) + int64(d.Exponent())
}

// reduce brings d to a form that can be compared and rounded without
// rescaling by a huge power of ten. Values too small to survive rounding
// become zero. It reports false when d has more than maxDigits integer digits.
func reduce(d decimal.Decimal, maxDigits int64) (decimal.Decimal, bool) {
	if d.Sign() == 0 {
		return decimal.Zero, true
	}

	digits := integerDigits(d)
	if digits > maxDigits {
		return decimal.Zero, false
	}
	if digits < -Scale {
		return decimal.Zero, true
	}
	return d, true
}

// FormatAmount renders d with exactly two fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// ValidateAmount checks the sign and upper bound of amount and returns it
// rounded to two decimal places. Bounds are checked before rounding.
func ValidateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}

	amount, ok := reduce(amount, maxAmountDigits)
	if !ok || amount.GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: maximum amount is %s", ErrAmountExceedsMaximum, MaxAmount)
	}

	return Round(amount), nil
}

// ParseAmount parses user input into a validated, rounded amount.
func ParseAmount(input string) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}

	amount, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, input)
	}

	return ValidateAmount(amount)
}
