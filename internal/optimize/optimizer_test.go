package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velobank/velocity-cli/internal/engine"
)

func testConstraints() Constraints {
	return Constraints{
		MinChunk:        1000,
		MaxChunk:        20000,
		AvailableLOC:    50000,
		MonthlyIncome:   7000,
		MonthlyExpenses: 4500,
	}
}

func TestOptimize_GridStaysInBounds(t *testing.T) {
	t.Parallel()

	cons := testConstraints()
	res, err := New().Optimize(200000, 5.5, 1500, cons, engine.Monthly, GoalBalanced, MethodGrid)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.OptimalChunk, cons.MinChunk)
	assert.LessOrEqual(t, res.OptimalChunk, cons.MaxChunk)
	assert.True(t, res.Converged)
	assert.Greater(t, res.InterestSaved, 0.0)
	assert.Equal(t, GoalBalanced, res.Goal)
	assert.Equal(t, MethodGrid, res.Method)
}

func TestOptimize_AllMethodsAndGoals(t *testing.T) {
	t.Parallel()

	cons := testConstraints()
	for _, method := range Methods {
		for _, goal := range Goals {
			t.Run(string(method)+"/"+string(goal), func(t *testing.T) {
				t.Parallel()
				res, err := New().Optimize(200000, 5.5, 1500, cons, engine.Monthly, goal, method)
				require.NoError(t, err)

				assert.GreaterOrEqual(t, res.OptimalChunk, cons.MinChunk)
				assert.LessOrEqual(t, res.OptimalChunk, cons.MaxChunk)
				assert.GreaterOrEqual(t, res.ConfidenceScore, 0.0)
				assert.LessOrEqual(t, res.ConfidenceScore, 1.0)
				assert.Contains(t, []string{StrategyConservative, StrategyModerate, StrategyAggressive}, res.StrategyType)
				assert.Greater(t, res.MonthsToPayoff, 0)
				assert.InDelta(t, res.OptimalChunk/3, res.MonthlyCashflowImpact, 0.01)
			})
		}
	}
}

func TestOptimize_GridIdempotent(t *testing.T) {
	t.Parallel()

	cons := testConstraints()
	a, err := New().Optimize(200000, 5.5, 1500, cons, engine.Monthly, GoalBalanced, MethodGrid)
	require.NoError(t, err)
	b, err := New().Optimize(200000, 5.5, 1500, cons, engine.Monthly, GoalBalanced, MethodGrid)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestOptimize_GlobalSeedDeterminism(t *testing.T) {
	t.Parallel()

	cons := testConstraints()
	a, err := New().Optimize(200000, 5.5, 1500, cons, engine.Monthly, GoalBalanced, MethodGlobal)
	require.NoError(t, err)
	b, err := New().Optimize(200000, 5.5, 1500, cons, engine.Monthly, GoalBalanced, MethodGlobal)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestOptimize_InterestSavedConsistency(t *testing.T) {
	t.Parallel()

	res, err := New().Optimize(200000, 5.5, 1500, testConstraints(), engine.Monthly, GoalInterest, MethodGrid)
	require.NoError(t, err)

	_, baseline := engine.PayoffMetrics(200000, 5.5, 1500, 0, engine.Monthly)
	assert.InDelta(t, baseline-res.TotalInterest, res.InterestSaved, 0.05)
}

func TestOptimize_InvalidInputs(t *testing.T) {
	t.Parallel()

	cons := testConstraints()

	_, err := New().Optimize(200000, 5.5, 1500, Constraints{MinChunk: 5000, MaxChunk: 1000}, engine.Monthly, GoalInterest, MethodGrid)
	assert.ErrorIs(t, err, ErrInvalidConstraints)

	_, err = New().Optimize(200000, 5.5, 1500, Constraints{MinChunk: -1, MaxChunk: 1000}, engine.Monthly, GoalInterest, MethodGrid)
	assert.ErrorIs(t, err, ErrInvalidConstraints)

	_, err = New().Optimize(0, 5.5, 1500, cons, engine.Monthly, GoalInterest, MethodGrid)
	assert.ErrorIs(t, err, engine.ErrInvalidLoanParameters)

	_, err = New().Optimize(200000, 5.5, 1500, cons, engine.Frequency(7), GoalInterest, MethodGrid)
	assert.ErrorIs(t, err, engine.ErrInvalidFrequency)

	_, err = New().Optimize(200000, 5.5, 1500, cons, engine.Monthly, GoalInterest, Method("annealing"))
	assert.Error(t, err)
}

func TestConfidenceScore(t *testing.T) {
	t.Parallel()

	cons := testConstraints()

	assert.Equal(t, 0.3, confidenceScore(10000, cons, false))

	// Mid-range chunk, repayable, low utilization: full confidence.
	assert.Equal(t, 1.0, confidenceScore(5000, cons, true))

	// Near the lower bound costs 0.2.
	assert.InDelta(t, 0.8, confidenceScore(1100, cons, true), 1e-9)

	// Above three months of cash flow (7500) costs 0.3.
	assert.InDelta(t, 0.7, confidenceScore(10000, cons, true), 1e-9)

	// Near the upper bound and unrepayable stacks both penalties.
	assert.InDelta(t, 0.5, confidenceScore(19500, cons, true), 1e-9)
}

func TestStrategyType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StrategyConservative, strategyType(10000, 50000))
	assert.Equal(t, StrategyModerate, strategyType(25000, 50000))
	assert.Equal(t, StrategyAggressive, strategyType(40000, 50000))
}

func TestDeriveConstraints(t *testing.T) {
	t.Parallel()

	cons := DeriveConstraints(50000, 7000, 4500)
	assert.Equal(t, 1250.0, cons.MinChunk) // half of 2500 net cash flow
	assert.Equal(t, 15000.0, cons.MaxChunk)
	assert.NoError(t, cons.Validate())

	// Thin cash flow falls back to the $1000 floor.
	cons = DeriveConstraints(50000, 5000, 4000)
	assert.Equal(t, 1000.0, cons.MinChunk)
	assert.Equal(t, 6000.0, cons.MaxChunk)
}

func TestParseGoalAndMethod(t *testing.T) {
	t.Parallel()

	for _, g := range Goals {
		got, err := ParseGoal(string(g))
		require.NoError(t, err)
		assert.Equal(t, g, got)
	}
	_, err := ParseGoal("speed")
	assert.Error(t, err)

	for _, m := range Methods {
		got, err := ParseMethod(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err = ParseMethod("random")
	assert.Error(t, err)
}
