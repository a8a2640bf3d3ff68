package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds for user-supplied amounts. Decimal comparison rescales operands to a
// common exponent, so an input such as "1e100000000" would otherwise expand
// into an enormous big.Int.
const (
	MinAmountExponent = -10
	MaxAmountExponent = 15
	maxAmountDigits   = 40
)

var ErrAmountOutOfRange = errors.New("amount out of range")

// ParseAmount parses a decimal string and rejects values whose exponent or
// length falls outside the supported window.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if len(s) > maxAmountDigits {
		return decimal.Zero, fmt.Errorf("%q: %w", s[:maxAmountDigits]+"…", ErrAmountOutOfRange)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if err := CheckAmount(d); err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", s, err)
	}
	return d, nil
}

// CheckAmount reports whether d's exponent is inside the supported window.
func CheckAmount(d decimal.Decimal) error {
	if e := d.Exponent(); e < MinAmountExponent || e > MaxAmountExponent {
		return ErrAmountOutOfRange
	}
	return nil
}
