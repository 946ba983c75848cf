package optimize

import (
	"github.com/rotisserie/eris"

	"github.com/velobank/velocity-cli/internal/engine"
)

// Goal selects the objective shape the search minimizes.
type Goal string

// Supported optimization goals.
const (
	GoalInterest Goal = "interest"
	GoalTime     Goal = "time"
	GoalBalanced Goal = "balanced"
)

// Goals lists the supported goals in canonical order.
var Goals = []Goal{GoalInterest, GoalTime, GoalBalanced}

// ParseGoal converts a wire-format goal name to a Goal.
func ParseGoal(s string) (Goal, error) {
	switch Goal(s) {
	case GoalInterest, GoalTime, GoalBalanced:
		return Goal(s), nil
	default:
		return "", eris.Errorf("optimize: unknown goal %q", s)
	}
}

// Method selects the search algorithm.
type Method string

// Supported search methods.
const (
	MethodLocal  Method = "local"
	MethodGlobal Method = "global"
	MethodGrid   Method = "grid"
)

// Methods lists the supported methods in canonical order.
var Methods = []Method{MethodLocal, MethodGlobal, MethodGrid}

// ParseMethod converts a wire-format method name to a Method.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodLocal, MethodGlobal, MethodGrid:
		return Method(s), nil
	default:
		return "", eris.Errorf("optimize: unknown method %q", s)
	}
}

// Objective shaping constants. The time goal's interest divisor only breaks
// ties among equal-month solutions; the balanced weights combine interest
// normalized by starting balance with months normalized by the horizon cap.
const (
	timeInterestDivisor = 10000.0
	balancedInterestW   = 0.6
	balancedTimeW       = 0.4
)

// problem binds loan parameters and a goal into the scalar objective f(chunk)
// every search method minimizes.
type problem struct {
	balance        float64
	annualRate     float64
	monthlyPayment float64
	freq           engine.Frequency
	goal           Goal
}

func (p problem) eval(chunk float64) float64 {
	months, interest := engine.PayoffMetrics(p.balance, p.annualRate, p.monthlyPayment, chunk, p.freq)

	switch p.goal {
	case GoalInterest:
		return interest
	case GoalTime:
		return float64(months) + interest/timeInterestDivisor
	default: // balanced
		return balancedInterestW*(interest/p.balance) + balancedTimeW*(float64(months)/float64(engine.MaxMonths))
	}
}
