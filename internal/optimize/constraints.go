// Package optimize searches for the chunk payment amount that best trades off
// payoff time and interest cost under cash-flow and credit-limit constraints.
package optimize

import (
	"math"

	"github.com/rotisserie/eris"
)

// ErrInvalidConstraints reports an inconsistent chunk search interval.
var ErrInvalidConstraints = eris.New("optimize: invalid constraints")

// Constraints bounds the chunk search. MinChunk/MaxChunk are derived by the
// caller (see DeriveConstraints); the optimizer only checks they are
// internally consistent.
type Constraints struct {
	MinChunk           float64 `json:"min_chunk"`
	MaxChunk           float64 `json:"max_chunk"`
	AvailableLOC       float64 `json:"available_loc"`
	MonthlyIncome      float64 `json:"monthly_income"`
	MonthlyExpenses    float64 `json:"monthly_expenses"`
	MinCashflowReserve float64 `json:"min_cashflow_reserve,omitempty"`
	MaxDebtToIncome    float64 `json:"max_debt_to_income,omitempty"`
}

// Validate checks internal consistency of the search interval.
func (c Constraints) Validate() error {
	if c.MinChunk < 0 || c.MaxChunk < 0 {
		return eris.Wrapf(ErrInvalidConstraints, "negative bounds [%.2f, %.2f]", c.MinChunk, c.MaxChunk)
	}
	if c.MinChunk > c.MaxChunk {
		return eris.Wrapf(ErrInvalidConstraints, "min chunk %.2f exceeds max chunk %.2f", c.MinChunk, c.MaxChunk)
	}
	return nil
}

// DeriveConstraints computes the chunk search interval from cash flow and
// credit headroom: at least $1000 or half a month of net cash flow on the low
// end, and the smaller of 90% of the line and six months of net cash flow on
// the high end.
func DeriveConstraints(availableLOC, monthlyIncome, monthlyExpenses float64) Constraints {
	netCashflow := monthlyIncome - monthlyExpenses
	return Constraints{
		MinChunk:           math.Max(1000, netCashflow*0.5),
		MaxChunk:           math.Min(availableLOC*0.9, netCashflow*6),
		AvailableLOC:       availableLOC,
		MonthlyIncome:      monthlyIncome,
		MonthlyExpenses:    monthlyExpenses,
		MinCashflowReserve: 1000,
		MaxDebtToIncome:    0.43,
	}
}
