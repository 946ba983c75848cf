package engine

import (
	"math"

	"github.com/rotisserie/eris"
)

// MonthlyPayment computes the fixed payment that amortizes principal over the
// given term using the standard annuity formula. A zero rate degenerates to
// straight-line principal division.
func MonthlyPayment(principal, annualRate float64, months int) (float64, error) {
	if principal <= 0 {
		return 0, eris.Wrapf(ErrInvalidLoanParameters, "principal %.2f must be positive", principal)
	}
	if annualRate < 0 {
		return 0, eris.Wrapf(ErrInvalidLoanParameters, "annual rate %.2f must not be negative", annualRate)
	}
	if months <= 0 {
		return 0, eris.Wrapf(ErrInvalidLoanParameters, "term %d months must be positive", months)
	}

	monthlyRate := annualRate / 12 / 100
	if monthlyRate == 0 {
		return principal / float64(months), nil
	}

	growth := math.Pow(1+monthlyRate, float64(months))
	return principal * monthlyRate * growth / (growth - 1), nil
}

// Amortize simulates a fixed-payment amortizing loan month by month until
// payoff or the 360-month cap, whichever comes first. Loans whose payment
// does not cover interest truncate at the cap; check Schedule.Truncated.
func Amortize(principal, annualRate, monthlyPayment float64) (*Schedule, error) {
	if err := validateLoan(principal, annualRate, monthlyPayment); err != nil {
		return nil, err
	}

	monthlyRate := annualRate / 12 / 100
	balance := principal
	totalInterest := 0.0

	sched := &Schedule{}
	for month := 1; balance > payoffEpsilon && month <= MaxMonths; month++ {
		interest := balance * monthlyRate
		principalPaid := math.Min(monthlyPayment-interest, balance)
		balance -= principalPaid
		totalInterest += interest

		sched.Entries = append(sched.Entries, Entry{
			Month:     month,
			Payment:   monthlyPayment,
			Principal: principalPaid,
			Interest:  interest,
			Balance:   math.Max(0, balance),
		})
		sched.TotalMonths = month
	}

	sched.TotalInterest = totalInterest
	sched.TotalPayments = totalInterest + principal
	return sched, nil
}
