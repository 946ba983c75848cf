package optimize

import (
	"github.com/rotisserie/eris"

	"github.com/velobank/velocity-cli/internal/engine"
)

// Perturbation is the effect of nudging one parameter on payoff time and
// total interest. Percentage fields are relative to the unperturbed baseline
// and are NaN/Inf for a zero-interest baseline; callers treating that case
// should guard before formatting.
type Perturbation struct {
	MonthsChange   int     `json:"months_change"`
	InterestChange float64 `json:"interest_change"`
	MonthsPct      float64 `json:"months_pct"`
	InterestPct    float64 `json:"interest_pct"`
}

// Sensitivity holds one-at-a-time perturbation results for the three inputs
// that drive the payoff simulation. No cross-term interactions are modeled.
type Sensitivity struct {
	InterestRate   Perturbation `json:"interest_rate"`
	ChunkAmount    Perturbation `json:"chunk_amount"`
	MonthlyPayment Perturbation `json:"monthly_payment"`
}

// Sensitivity perturbs the rate, the chunk, and the payment independently by
// the given fraction (0.1 = +10%) and diffs each re-simulation against a
// single unperturbed baseline.
func (o *Optimizer) Sensitivity(balance, annualRate, monthlyPayment, optimalChunk float64, freq engine.Frequency, perturbation float64) (*Sensitivity, error) {
	if balance <= 0 || monthlyPayment <= 0 {
		return nil, eris.Wrapf(engine.ErrInvalidLoanParameters,
			"balance %.2f and monthly payment %.2f must be positive", balance, monthlyPayment)
	}
	if !freq.Valid() {
		return nil, eris.Wrapf(engine.ErrInvalidFrequency, "%d months", int(freq))
	}

	baseMonths, baseInterest := engine.PayoffMetrics(balance, annualRate, monthlyPayment, optimalChunk, freq)

	diff := func(months int, interest float64) Perturbation {
		return Perturbation{
			MonthsChange:   months - baseMonths,
			InterestChange: interest - baseInterest,
			MonthsPct:      float64(months-baseMonths) / float64(baseMonths) * 100,
			InterestPct:    (interest - baseInterest) / baseInterest * 100,
		}
	}

	s := &Sensitivity{}

	months, interest := engine.PayoffMetrics(balance, annualRate*(1+perturbation), monthlyPayment, optimalChunk, freq)
	s.InterestRate = diff(months, interest)

	months, interest = engine.PayoffMetrics(balance, annualRate, monthlyPayment, optimalChunk*(1+perturbation), freq)
	s.ChunkAmount = diff(months, interest)

	months, interest = engine.PayoffMetrics(balance, annualRate, monthlyPayment*(1+perturbation), optimalChunk, freq)
	s.MonthlyPayment = diff(months, interest)

	return s, nil
}
