// Package engine implements the mortgage payoff simulators: standard
// amortization and velocity banking schedules with lump-sum chunk payments
// funded from a line of credit.
package engine

import (
	"github.com/rotisserie/eris"
)

// MaxMonths caps every simulation at 30 years. Parameter combinations that
// never amortize (payment below interest-only) truncate here rather than loop.
const MaxMonths = 360

// payoffEpsilon is the balance below which a loan counts as paid off.
const payoffEpsilon = 0.01

// ErrInvalidLoanParameters reports a non-positive balance/payment or a
// negative rate.
var ErrInvalidLoanParameters = eris.New("engine: invalid loan parameters")

// ErrInvalidFrequency reports a chunk frequency outside {monthly, quarterly, annual}.
var ErrInvalidFrequency = eris.New("engine: invalid chunk frequency")

// ErrDivisionUndefined reports a savings comparison against a zero-interest
// baseline, where percentage saved has no meaning.
var ErrDivisionUndefined = eris.New("engine: savings undefined for zero-interest baseline")

// Frequency is the number of months between chunk payments.
type Frequency int

// Supported chunk cadences.
const (
	Monthly   Frequency = 1
	Quarterly Frequency = 3
	Annual    Frequency = 12
)

// ParseFrequency converts a wire-format frequency name to a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch s {
	case "monthly":
		return Monthly, nil
	case "quarterly":
		return Quarterly, nil
	case "annual":
		return Annual, nil
	default:
		return 0, eris.Wrapf(ErrInvalidFrequency, "%q", s)
	}
}

func (f Frequency) String() string {
	switch f {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Annual:
		return "annual"
	default:
		return "unknown"
	}
}

// Valid reports whether f is one of the supported cadences.
func (f Frequency) Valid() bool {
	return f == Monthly || f == Quarterly || f == Annual
}

// Entry is one simulated month. Entries are append-only and never mutated
// once emitted.
type Entry struct {
	Month        int     `json:"month"`
	Payment      float64 `json:"payment"`
	Principal    float64 `json:"principal"`
	Interest     float64 `json:"interest"`
	Balance      float64 `json:"balance"`
	ChunkApplied float64 `json:"chunk_applied,omitempty"`
}

// Schedule is an ordered month-by-month payoff simulation with aggregate
// totals. It is entirely derived from its inputs and safe to share.
type Schedule struct {
	Entries            []Entry `json:"schedule"`
	TotalMonths        int     `json:"total_months"`
	TotalInterest      float64 `json:"total_interest"`
	TotalPayments      float64 `json:"total_payments"`
	TotalChunkPayments float64 `json:"total_chunk_payments,omitempty"`
}

// Truncated reports whether the simulation hit the 360-month cap with a
// balance still outstanding, as opposed to a true payoff.
func (s *Schedule) Truncated() bool {
	if s.TotalMonths < MaxMonths || len(s.Entries) == 0 {
		return false
	}
	return s.Entries[len(s.Entries)-1].Balance > payoffEpsilon
}

func validateLoan(balance, annualRate, monthlyPayment float64) error {
	if balance <= 0 {
		return eris.Wrapf(ErrInvalidLoanParameters, "balance %.2f must be positive", balance)
	}
	if monthlyPayment <= 0 {
		return eris.Wrapf(ErrInvalidLoanParameters, "monthly payment %.2f must be positive", monthlyPayment)
	}
	if annualRate < 0 {
		return eris.Wrapf(ErrInvalidLoanParameters, "annual rate %.2f must not be negative", annualRate)
	}
	return nil
}
