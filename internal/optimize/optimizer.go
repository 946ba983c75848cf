package optimize

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/velobank/velocity-cli/internal/engine"
)

// Strategy classifications by line-of-credit utilization.
const (
	StrategyConservative = "conservative"
	StrategyModerate     = "moderate"
	StrategyAggressive   = "aggressive"
)

// Result is a fully derived optimization outcome. InterestSaved and payoff
// metrics are recomputed from clean simulations of the winning chunk, never
// taken from the (possibly weighted) objective value the search minimized.
type Result struct {
	OptimalChunk          float64 `json:"optimal_chunk"`
	MonthsToPayoff        int     `json:"months_to_payoff"`
	TotalInterest         float64 `json:"total_interest"`
	InterestSaved         float64 `json:"interest_saved"`
	MonthlyCashflowImpact float64 `json:"monthly_cashflow_impact"`
	ConfidenceScore       float64 `json:"confidence_score"`
	StrategyType          string  `json:"strategy_type"`
	Converged             bool    `json:"convergence_success"`
	Goal                  Goal    `json:"optimization_goal"`
	Method                Method  `json:"method_used"`
}

// Optimizer finds the chunk amount minimizing a payoff objective. It holds
// only tuning knobs, no state, so a single value is safe for concurrent use.
type Optimizer struct {
	MaxIterations  int
	Tolerance      float64
	Seed           int64
	PopulationSize int
}

// New returns an Optimizer with the standard tuning: 1000 iterations max,
// 1e-6 tolerance, fixed seed for reproducible global searches.
func New() *Optimizer {
	return &Optimizer{
		MaxIterations:  1000,
		Tolerance:      1e-6,
		Seed:           42,
		PopulationSize: defaultPopulationSize,
	}
}

// Optimize searches [cons.MinChunk, cons.MaxChunk] for the chunk amount
// minimizing the goal's objective, then re-simulates the winner and the
// zero-chunk baseline to derive savings, confidence, and strategy class.
// A non-converging search still returns its best point with Converged=false.
func (o *Optimizer) Optimize(balance, annualRate, monthlyPayment float64, cons Constraints, freq engine.Frequency, goal Goal, method Method) (*Result, error) {
	if err := cons.Validate(); err != nil {
		return nil, err
	}
	if balance <= 0 || monthlyPayment <= 0 {
		return nil, eris.Wrapf(engine.ErrInvalidLoanParameters,
			"balance %.2f and monthly payment %.2f must be positive", balance, monthlyPayment)
	}
	if annualRate < 0 {
		return nil, eris.Wrapf(engine.ErrInvalidLoanParameters, "annual rate %.2f must not be negative", annualRate)
	}
	if !freq.Valid() {
		return nil, eris.Wrapf(engine.ErrInvalidFrequency, "%d months", int(freq))
	}

	p := problem{
		balance:        balance,
		annualRate:     annualRate,
		monthlyPayment: monthlyPayment,
		freq:           freq,
		goal:           goal,
	}

	var optimalChunk float64
	var converged bool
	switch method {
	case MethodGlobal:
		optimalChunk, converged = differentialEvolution(p.eval, cons.MinChunk, cons.MaxChunk, o.MaxIterations, o.PopulationSize, o.Tolerance, o.Seed)
	case MethodGrid:
		optimalChunk = gridSearch(p.eval, cons.MinChunk, cons.MaxChunk)
		converged = true
	case MethodLocal:
		optimalChunk, converged = localSearch(p.eval, cons.MinChunk, cons.MaxChunk, o.MaxIterations, o.Tolerance)
	default:
		return nil, eris.Errorf("optimize: unknown method %q", method)
	}

	months, interest := engine.PayoffMetrics(balance, annualRate, monthlyPayment, optimalChunk, freq)
	_, baselineInterest := engine.PayoffMetrics(balance, annualRate, monthlyPayment, 0, freq)

	res := &Result{
		OptimalChunk:          clamp(round2(optimalChunk), cons.MinChunk, cons.MaxChunk),
		MonthsToPayoff:        months,
		TotalInterest:         round2(interest),
		InterestSaved:         round2(baselineInterest - interest),
		MonthlyCashflowImpact: round2(optimalChunk / 3),
		ConfidenceScore:       round2(confidenceScore(optimalChunk, cons, converged)),
		StrategyType:          strategyType(optimalChunk, cons.AvailableLOC),
		Converged:             converged,
		Goal:                  goal,
		Method:                method,
	}

	zap.L().Debug("chunk optimization complete",
		zap.String("method", string(method)),
		zap.String("goal", string(goal)),
		zap.Float64("optimal_chunk", res.OptimalChunk),
		zap.Int("months_to_payoff", res.MonthsToPayoff),
		zap.Float64("interest_saved", res.InterestSaved),
		zap.Bool("converged", res.Converged),
	)

	return res, nil
}

// confidenceScore rates how trustworthy the winning chunk is. Non-convergence
// is a flat 0.3. Otherwise start at 1.0 and penalize boundary solutions,
// chunks unrepayable within three months of free cash flow, and near-maxed
// credit line utilization. Clamped to [0, 1].
func confidenceScore(optimalChunk float64, cons Constraints, converged bool) float64 {
	if !converged {
		return 0.3
	}

	score := 1.0

	if chunkRange := cons.MaxChunk - cons.MinChunk; chunkRange > 0 {
		relative := (optimalChunk - cons.MinChunk) / chunkRange
		if relative < 0.1 || relative > 0.9 {
			score -= 0.2
		}
	}

	monthlyCashflow := cons.MonthlyIncome - cons.MonthlyExpenses
	if optimalChunk > monthlyCashflow*3 {
		score -= 0.3
	}

	if optimalChunk/cons.AvailableLOC > 0.9 {
		score -= 0.1
	}

	return math.Max(0, math.Min(1, score))
}

// strategyType classifies the chunk by line-of-credit utilization.
func strategyType(optimalChunk, availableLOC float64) string {
	switch {
	case optimalChunk < availableLOC*0.3:
		return StrategyConservative
	case optimalChunk > availableLOC*0.7:
		return StrategyAggressive
	default:
		return StrategyModerate
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
