package engine

import (
	"math"

	"github.com/rotisserie/eris"
)

// SimulateVelocity simulates the loan with lump-sum chunk payments applied at
// the given cadence, layered on top of the regular monthly payment.
//
// Ordering within a month is load-bearing: the chunk lands before interest
// accrues, so when the chunk alone clears the balance the regular payment for
// that month is skipped and a terminal zero-interest entry is emitted. With
// chunkAmount zero the result matches Amortize exactly.
func SimulateVelocity(balance, annualRate, monthlyPayment, chunkAmount float64, freq Frequency) (*Schedule, error) {
	if err := validateLoan(balance, annualRate, monthlyPayment); err != nil {
		return nil, err
	}
	if !freq.Valid() {
		return nil, eris.Wrapf(ErrInvalidFrequency, "%d months", int(freq))
	}
	if chunkAmount < 0 {
		return nil, eris.Wrapf(ErrInvalidLoanParameters, "chunk amount %.2f must not be negative", chunkAmount)
	}

	monthlyRate := annualRate / 12 / 100
	principal := balance
	totalInterest := 0.0
	totalChunks := 0.0

	sched := &Schedule{}
	for month := 1; balance > payoffEpsilon && month <= MaxMonths; month++ {
		chunkApplied := 0.0

		if month%int(freq) == 0 && chunkAmount > 0 {
			chunkApplied = math.Min(chunkAmount, balance)
			balance -= chunkApplied
			totalChunks += chunkApplied

			if balance <= payoffEpsilon {
				sched.Entries = append(sched.Entries, Entry{
					Month:        month,
					Payment:      chunkApplied,
					Principal:    chunkApplied,
					Interest:     0,
					Balance:      0,
					ChunkApplied: chunkApplied,
				})
				sched.TotalMonths = month
				break
			}
		}

		interest := balance * monthlyRate
		principalPaid := math.Min(monthlyPayment-interest, balance)
		balance -= principalPaid
		totalInterest += interest

		sched.Entries = append(sched.Entries, Entry{
			Month:        month,
			Payment:      monthlyPayment,
			Principal:    principalPaid,
			Interest:     interest,
			Balance:      math.Max(0, balance),
			ChunkApplied: chunkApplied,
		})
		sched.TotalMonths = month
	}

	sched.TotalInterest = totalInterest
	sched.TotalPayments = totalInterest + principal
	sched.TotalChunkPayments = totalChunks
	return sched, nil
}
