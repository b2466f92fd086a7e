// Package money provides exact monetary arithmetic in centavo minor units.
// Amounts are plain int64 values in storage and in arithmetic; decimals are
// only used at the edges, for parsing request payloads and formatting
// responses. Floating point is never involved.
package money

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when a quantity is negative.
var ErrInvalidQuantity = errors.New("quantity must not be negative")

// Amount is a monetary value in centavos.
type Amount int64

var hundred = decimal.NewFromInt(100)

// FromDecimal converts a major-unit decimal value (e.g. 149.99) to an Amount.
// Values with more than two fractional digits or negative values are rejected.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative: %s", d)
	}
	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount has more than two decimal places: %s", d)
	}
	return Amount(cents.IntPart()), nil
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// String formats the amount for display, e.g. "₱ 1234.50".
func (a Amount) String() string {
	return "₱ " + a.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a major-unit JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number (or quoted number) in major units.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", data, err)
	}
	v, err := FromDecimal(d)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Subtotal computes unit price times quantity. Quantity zero is a valid
// input and yields zero; the caller is responsible for removing such a line
// rather than storing it.
func Subtotal(unit Amount, quantity int) (Amount, error) {
	if quantity < 0 {
		return 0, ErrInvalidQuantity
	}
	return unit * Amount(quantity), nil
}

// Total sums subtotals. An empty input sums to zero.
func Total(subtotals []Amount) Amount {
	var total Amount
	for _, s := range subtotals {
		total += s
	}
	return total
}
