// Package money provides the monetary value object used across the ledger.
// Amounts are stored as an integer number of cents so that balance
// arithmetic is exact; the decimal string form is only used at the edges
// (persisted records, API payloads, statements).
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrAmountOverflow is returned when an amount cannot be represented in cents.
var ErrAmountOverflow = errors.New("amount exceeds maximum representable value")

// Money is a signed amount of the ledger's single currency, in cents.
// The zero value is zero dollars.
type Money struct {
	cents int64
}

// New creates a Money from a dollar amount, rounding to the nearest cent.
func New(amount float64) (Money, error) {
	cents := amount * 100
	if math.IsNaN(cents) || cents > math.MaxInt64 || cents < math.MinInt64 {
		return Money{}, ErrAmountOverflow
	}
	return Money{cents: int64(math.Round(cents))}, nil
}

// FromCents creates a Money from an amount already in cents.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Parse converts a decimal string such as "12.50", "-85" or "100.0" into
// Money. The persisted record layout stores balances in this form.
func Parse(s string) (Money, error) {
	if s == "" {
		return Money{}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return New(f)
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float returns the amount in dollars.
func (m Money) Float() float64 {
	return float64(m.cents) / 100
}

// String formats the amount as a plain decimal with two places, e.g. "-85.00".
func (m Money) String() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

// Display formats the amount for human-facing output, e.g. "$-85.00".
func (m Money) Display() string {
	return "$" + m.String()
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{cents: -m.cents}
}

// Cmp compares m with other: -1 if m < other, 0 if equal, 1 if m > other.
func (m Money) Cmp(other Money) int {
	switch {
	case m.cents < other.cents:
		return -1
	case m.cents > other.cents:
		return 1
	default:
		return 0
	}
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// IsZero reports whether m == 0.
func (m Money) IsZero() bool {
	return m.cents == 0
}
