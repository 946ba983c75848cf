package engine

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// repaymentPeriodMonths is the assumed window for paying a chunk draw back
// down from free cash flow.
const repaymentPeriodMonths = 3

// scenarioMultipliers scales the recommended chunk for the what-if table.
var scenarioMultipliers = []float64{0.5, 0.75, 1.0}

// ChunkScenario is one what-if row in a chunk recommendation.
type ChunkScenario struct {
	ChunkAmount           float64 `json:"chunk_amount"`
	MonthsToPayoff        int     `json:"months_to_payoff"`
	TotalInterest         float64 `json:"total_interest"`
	MonthlyCashflowImpact float64 `json:"monthly_cashflow_impact"`
}

// Assumptions records the inputs the recommendation heuristic relied on.
type Assumptions struct {
	AvailableLOC          float64 `json:"available_loc"`
	MonthlyNetCashflow    float64 `json:"monthly_net_cashflow"`
	RepaymentPeriodMonths int     `json:"repayment_period_months"`
}

// Recommendation is a heuristic chunk suggestion with what-if scenarios at
// fractions of the recommended amount.
type Recommendation struct {
	RecommendedChunk float64         `json:"recommended_chunk"`
	Scenarios        []ChunkScenario `json:"scenarios"`
	Assumptions      Assumptions     `json:"assumptions"`
}

// RecommendChunk suggests a chunk amount from cash flow and credit headroom:
// the smaller of 80% of the available line and three months of net cash flow,
// so the draw stays repayable inside the assumed repayment window. Each
// scenario is simulated at monthly cadence.
func RecommendChunk(balance, annualRate, monthlyPayment, availableLOC, monthlyIncome, monthlyExpenses float64) (*Recommendation, error) {
	if err := validateLoan(balance, annualRate, monthlyPayment); err != nil {
		return nil, err
	}
	if availableLOC < 0 {
		return nil, eris.Wrapf(ErrInvalidLoanParameters, "available LOC %.2f must not be negative", availableLOC)
	}

	netCashflow := monthlyIncome - monthlyExpenses
	maxSafeChunk := availableLOC * 0.8
	repayableChunk := netCashflow * float64(repaymentPeriodMonths)
	recommended := math.Min(maxSafeChunk, repayableChunk)

	rec := &Recommendation{
		RecommendedChunk: recommended,
		Assumptions: Assumptions{
			AvailableLOC:          availableLOC,
			MonthlyNetCashflow:    netCashflow,
			RepaymentPeriodMonths: repaymentPeriodMonths,
		},
	}

	for _, mult := range scenarioMultipliers {
		chunk := recommended * mult
		sched, err := SimulateVelocity(balance, annualRate, monthlyPayment, math.Max(0, chunk), Monthly)
		if err != nil {
			return nil, eris.Wrapf(err, "simulate scenario at %.0f%%", mult*100)
		}
		rec.Scenarios = append(rec.Scenarios, ChunkScenario{
			ChunkAmount:           chunk,
			MonthsToPayoff:        sched.TotalMonths,
			TotalInterest:         sched.TotalInterest,
			MonthlyCashflowImpact: chunk / repaymentPeriodMonths,
		})
	}

	zap.L().Debug("chunk recommendation computed",
		zap.Float64("recommended_chunk", recommended),
		zap.Float64("net_cashflow", netCashflow),
		zap.Float64("available_loc", availableLOC),
	)

	return rec, nil
}
