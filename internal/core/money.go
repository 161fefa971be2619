// Package core provides money parsing and handling utilities.
//
// This file contains the amount parser used by the add flow and by the
// transaction file reader.
package core

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmountLen bounds the input so a long digit string cannot produce a huge row.
const maxAmountLen = 32

// plain digits with an optional fractional part; no sign, separators or exponent
var amountPattern = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount converts user input into a non-negative decimal amount.
//
// Only plain decimal notation with a dot separator is accepted, with an
// optional leading plus sign. Commas, exponents, negative values and
// anything else yield ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("1,000") -> 0, ErrInvalidAmount
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "+")
	if s == "" || len(s) > maxAmountLen || !amountPattern.MatchString(s) {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatMoney renders an amount the way the add flow confirms it: $12.50.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
