// Package finance implements the closed-form money calculators: interest
// accrual, progressive tax brackets and Korean severance pay.
package finance

import "github.com/shopspring/decimal"

// Bracket is one row of a progressive tax table.
type Bracket struct {
	// UpperBound is the largest taxable amount in this bracket.
	// Zero marks the open-ended top bracket.
	UpperBound int64

	Rate decimal.Decimal

	// Deduction is the fixed amount subtracted after applying Rate
	// (the "quick deduction" that makes the table progressive).
	Deduction int64
}

// Table is a list of brackets ordered by ascending UpperBound.
type Table []Bracket

// IncomeTax is the Korean comprehensive income tax table (2023 onward).
var IncomeTax = Table{
	{UpperBound: 14_000_000, Rate: decimal.RequireFromString("0.06"), Deduction: 0},
	{UpperBound: 50_000_000, Rate: decimal.RequireFromString("0.15"), Deduction: 1_260_000},
	{UpperBound: 88_000_000, Rate: decimal.RequireFromString("0.24"), Deduction: 5_760_000},
	{UpperBound: 150_000_000, Rate: decimal.RequireFromString("0.35"), Deduction: 15_440_000},
	{UpperBound: 300_000_000, Rate: decimal.RequireFromString("0.38"), Deduction: 19_940_000},
	{UpperBound: 500_000_000, Rate: decimal.RequireFromString("0.40"), Deduction: 25_940_000},
	{UpperBound: 1_000_000_000, Rate: decimal.RequireFromString("0.42"), Deduction: 35_940_000},
	{UpperBound: 0, Rate: decimal.RequireFromString("0.45"), Deduction: 65_940_000},
}

// Lookup returns the first bracket whose bound is not exceeded by amount.
func (t Table) Lookup(amount int64) Bracket {
	for _, b := range t {
		if b.UpperBound == 0 || amount <= b.UpperBound {
			return b
		}
	}
	return t[len(t)-1]
}

// Tax computes floor(amount × rate) − deduction, floored at zero.
func (t Table) Tax(amount int64) int64 {
	if amount <= 0 || len(t) == 0 {
		return 0
	}
	b := t.Lookup(amount)
	tax := floorMul(amount, b.Rate) - b.Deduction
	return max(tax, 0)
}

// floorMul returns floor(amount × rate).
func floorMul(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Floor().IntPart()
}
