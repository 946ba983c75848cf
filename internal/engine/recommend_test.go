package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendChunk_CashflowBound(t *testing.T) {
	t.Parallel()

	// 3 months of net cash flow (7500) is below 80% of the line (40000).
	rec, err := RecommendChunk(200000, 5.5, 1500, 50000, 7000, 4500)
	require.NoError(t, err)

	assert.InDelta(t, 7500, rec.RecommendedChunk, 1e-9)
	assert.Equal(t, 2500.0, rec.Assumptions.MonthlyNetCashflow)
	assert.Equal(t, 50000.0, rec.Assumptions.AvailableLOC)
	assert.Equal(t, 3, rec.Assumptions.RepaymentPeriodMonths)
}

func TestRecommendChunk_CreditBound(t *testing.T) {
	t.Parallel()

	// 80% of a 5000 line beats three months of 3000 net cash flow.
	rec, err := RecommendChunk(200000, 5.5, 1500, 5000, 8000, 5000)
	require.NoError(t, err)

	assert.InDelta(t, 4000, rec.RecommendedChunk, 1e-9)
}

func TestRecommendChunk_Scenarios(t *testing.T) {
	t.Parallel()

	rec, err := RecommendChunk(200000, 5.5, 1500, 50000, 7000, 4500)
	require.NoError(t, err)

	require.Len(t, rec.Scenarios, 3)
	for i, mult := range []float64{0.5, 0.75, 1.0} {
		sc := rec.Scenarios[i]
		assert.InDelta(t, rec.RecommendedChunk*mult, sc.ChunkAmount, 1e-9)
		assert.InDelta(t, sc.ChunkAmount/3, sc.MonthlyCashflowImpact, 1e-9)

		sched, err := SimulateVelocity(200000, 5.5, 1500, sc.ChunkAmount, Monthly)
		require.NoError(t, err)
		assert.Equal(t, sched.TotalMonths, sc.MonthsToPayoff)
		assert.InDelta(t, sched.TotalInterest, sc.TotalInterest, 1e-9)
	}

	// Bigger chunk, faster payoff.
	assert.LessOrEqual(t, rec.Scenarios[2].MonthsToPayoff, rec.Scenarios[0].MonthsToPayoff)
}

func TestRecommendChunk_NegativeCashflow(t *testing.T) {
	t.Parallel()

	// Expenses above income: scenarios degrade to the zero-chunk baseline.
	rec, err := RecommendChunk(200000, 5.5, 1500, 50000, 4000, 5000)
	require.NoError(t, err)

	assert.Negative(t, rec.RecommendedChunk)
	standard, err := Amortize(200000, 5.5, 1500)
	require.NoError(t, err)
	for _, sc := range rec.Scenarios {
		assert.Equal(t, standard.TotalMonths, sc.MonthsToPayoff)
	}
}

func TestRecommendChunk_Invalid(t *testing.T) {
	t.Parallel()

	_, err := RecommendChunk(0, 5.5, 1500, 50000, 7000, 4500)
	assert.ErrorIs(t, err, ErrInvalidLoanParameters)

	_, err = RecommendChunk(200000, 5.5, 1500, -1, 7000, 4500)
	assert.ErrorIs(t, err, ErrInvalidLoanParameters)
}
