package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point currency amount held as integer minor units (halala for
// SAR). All persisted or compared values stay in int64 minor units; fraction math
// runs through decimal and is floored back to minor units, never through binary
// floating point.
type Money struct {
	Amount       int64  `json:"amount"` // minor units
	CurrencyCode string `json:"currencyCode"`
}

// NewMoney creates a Money value from minor units.
func NewMoney(amount int64, currencyCode string) Money {
	return Money{Amount: amount, CurrencyCode: currencyCode}
}

// Add returns m + other. The currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if m.CurrencyCode != other.CurrencyCode {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.CurrencyCode, other.CurrencyCode)
	}
	return Money{Amount: m.Amount + other.Amount, CurrencyCode: m.CurrencyCode}, nil
}

// Sub returns m - other. The currencies must match.
func (m Money) Sub(other Money) (Money, error) {
	if m.CurrencyCode != other.CurrencyCode {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.CurrencyCode, other.CurrencyCode)
	}
	return Money{Amount: m.Amount - other.Amount, CurrencyCode: m.CurrencyCode}, nil
}

// PercentageOf returns pct percent of m, floored to minor units.
func (m Money) PercentageOf(pct decimal.Decimal) Money {
	amount := decimal.NewFromInt(m.Amount).Mul(pct).Div(decimal.NewFromInt(100))
	return Money{Amount: amount.Floor().IntPart(), CurrencyCode: m.CurrencyCode}
}

// MulFraction returns m * num/den, floored to minor units.
func (m Money) MulFraction(num, den int64) Money {
	amount := decimal.NewFromInt(m.Amount).Mul(decimal.NewFromInt(num)).Div(decimal.NewFromInt(den))
	return Money{Amount: amount.Floor().IntPart(), CurrencyCode: m.CurrencyCode}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount < 0
}

// Equal reports whether both amount and currency match exactly.
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.CurrencyCode == other.CurrencyCode
}

// String renders the amount with two decimal places, e.g. "1234.56 SAR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", decimal.New(m.Amount, -2).StringFixed(2), m.CurrencyCode)
}

// AllocateProportionally splits m across the given weights so that the results sum
// to m exactly. Each share is floored, then the leftover minor units are handed out
// one-by-one to the entries with the largest fractional remainders (largest-remainder
// method). Remainder ties break by ascending index, so callers that need a stable
// outcome must order their inputs deterministically (rosters are ordered by
// ascending beneficiary id). Weights must be non-negative with a positive sum.
func (m Money) AllocateProportionally(weights []decimal.Decimal) ([]Money, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("no weights to allocate across")
	}

	sumWeights := decimal.Zero
	for i, w := range weights {
		if w.IsNegative() {
			return nil, fmt.Errorf("weight at index %d is negative: %s", i, w.String())
		}
		sumWeights = sumWeights.Add(w)
	}
	if !sumWeights.IsPositive() {
		return nil, fmt.Errorf("sum of weights must be positive")
	}

	total := decimal.NewFromInt(m.Amount)
	amounts := make([]Money, len(weights))
	remainders := make([]decimal.Decimal, len(weights))
	allocated := int64(0)

	for i, w := range weights {
		exact := total.Mul(w).Div(sumWeights)
		floored := exact.Floor()
		amounts[i] = Money{Amount: floored.IntPart(), CurrencyCode: m.CurrencyCode}
		remainders[i] = exact.Sub(floored)
		allocated += floored.IntPart()
	}

	leftover := m.Amount - allocated

	// Hand out leftover minor units by descending fractional remainder,
	// ties resolved by ascending index.
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})
	for i := int64(0); i < leftover; i++ {
		amounts[order[i%int64(len(order))]].Amount++
	}

	return amounts, nil
}
