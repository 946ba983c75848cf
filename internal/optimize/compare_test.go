package optimize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velobank/velocity-cli/internal/engine"
)

func TestCompareMethods(t *testing.T) {
	t.Parallel()

	results, err := New().CompareMethods(context.Background(), 200000, 5.5, 1500, testConstraints(), engine.Monthly, GoalBalanced)
	require.NoError(t, err)

	require.Len(t, results, len(Methods))
	for i, method := range Methods {
		assert.Equal(t, method, results[i].Method)
		require.NotNil(t, results[i].Result)
		assert.Equal(t, method, results[i].Result.Method)
		assert.Equal(t, GoalBalanced, results[i].Result.Goal)
	}
}

func TestCompareMethods_InvalidConstraints(t *testing.T) {
	t.Parallel()

	_, err := New().CompareMethods(context.Background(), 200000, 5.5, 1500, Constraints{MinChunk: 9, MaxChunk: 1}, engine.Monthly, GoalBalanced)
	assert.ErrorIs(t, err, ErrInvalidConstraints)
}

func TestParetoSet(t *testing.T) {
	t.Parallel()

	results, err := New().ParetoSet(context.Background(), 200000, 5.5, 1500, testConstraints(), engine.Monthly)
	require.NoError(t, err)

	require.Len(t, results, len(Goals))
	for i, goal := range Goals {
		require.NotNil(t, results[i])
		assert.Equal(t, goal, results[i].Goal)
		assert.Equal(t, MethodGlobal, results[i].Method)
	}
}

func TestSensitivity(t *testing.T) {
	t.Parallel()

	s, err := New().Sensitivity(200000, 5.5, 1500, 5000, engine.Monthly, 0.1)
	require.NoError(t, err)

	// A higher rate costs interest; bigger chunks or payments save it.
	assert.Greater(t, s.InterestRate.InterestChange, 0.0)
	assert.LessOrEqual(t, s.ChunkAmount.InterestChange, 0.0)
	assert.LessOrEqual(t, s.MonthlyPayment.InterestChange, 0.0)
	assert.LessOrEqual(t, s.MonthlyPayment.MonthsChange, 0)

	assert.Greater(t, s.InterestRate.InterestPct, 0.0)
}

func TestSensitivity_Invalid(t *testing.T) {
	t.Parallel()

	_, err := New().Sensitivity(0, 5.5, 1500, 5000, engine.Monthly, 0.1)
	assert.ErrorIs(t, err, engine.ErrInvalidLoanParameters)

	_, err = New().Sensitivity(200000, 5.5, 1500, 5000, engine.Frequency(2), 0.1)
	assert.ErrorIs(t, err, engine.ErrInvalidFrequency)
}
