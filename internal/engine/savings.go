package engine

// Savings quantifies what a velocity schedule saves against the standard
// amortization baseline.
type Savings struct {
	InterestSaved   float64 `json:"interest_saved"`
	MonthsSaved     int     `json:"months_saved"`
	PercentageSaved float64 `json:"percentage_saved"`
}

// CompareSavings diffs a velocity schedule against the standard baseline.
// Returns ErrDivisionUndefined when the baseline paid no interest, since
// percentage saved is meaningless for a zero-interest loan.
func CompareSavings(standard, velocity *Schedule) (Savings, error) {
	if standard.TotalInterest == 0 {
		return Savings{}, ErrDivisionUndefined
	}

	interestSaved := standard.TotalInterest - velocity.TotalInterest
	return Savings{
		InterestSaved:   interestSaved,
		MonthsSaved:     standard.TotalMonths - velocity.TotalMonths,
		PercentageSaved: interestSaved / standard.TotalInterest * 100,
	}, nil
}
