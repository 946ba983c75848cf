package engine

import "math"

// PayoffMetrics runs the velocity simulation without materializing schedule
// entries, returning only months to payoff and total interest. The optimizer
// evaluates this thousands of times per search, so it skips allocation but
// must stay step-for-step identical to SimulateVelocity.
func PayoffMetrics(balance, annualRate, monthlyPayment, chunkAmount float64, freq Frequency) (months int, totalInterest float64) {
	monthlyRate := annualRate / 12 / 100
	perChunk := int(freq)
	if perChunk < 1 {
		perChunk = 1
	}

	month := 0
	for balance > payoffEpsilon && month < MaxMonths {
		month++

		if month%perChunk == 0 && chunkAmount > 0 {
			balance -= math.Min(chunkAmount, balance)
			if balance <= payoffEpsilon {
				break
			}
		}

		interest := balance * monthlyRate
		balance -= math.Min(monthlyPayment-interest, balance)
		totalInterest += interest
	}

	return month, totalInterest
}
