package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareSavings(t *testing.T) {
	t.Parallel()

	standard, err := Amortize(200000, 5.5, 1500)
	require.NoError(t, err)

	velocity, err := SimulateVelocity(200000, 5.5, 1500, 5000, Monthly)
	require.NoError(t, err)

	sav, err := CompareSavings(standard, velocity)
	require.NoError(t, err)

	assert.InDelta(t, standard.TotalInterest-velocity.TotalInterest, sav.InterestSaved, 1e-9)
	assert.Equal(t, standard.TotalMonths-velocity.TotalMonths, sav.MonthsSaved)
	assert.Greater(t, sav.PercentageSaved, 0.0)
	assert.Less(t, sav.PercentageSaved, 100.0)
}

func TestCompareSavings_ZeroChunkIsZero(t *testing.T) {
	t.Parallel()

	standard, err := Amortize(200000, 5.5, 1500)
	require.NoError(t, err)

	velocity, err := SimulateVelocity(200000, 5.5, 1500, 0, Monthly)
	require.NoError(t, err)

	sav, err := CompareSavings(standard, velocity)
	require.NoError(t, err)

	assert.InDelta(t, 0, sav.InterestSaved, 1e-6)
	assert.Equal(t, 0, sav.MonthsSaved)
	assert.InDelta(t, 0, sav.PercentageSaved, 1e-6)
}

func TestCompareSavings_ZeroInterestBaseline(t *testing.T) {
	t.Parallel()

	standard, err := Amortize(12000, 0, 1000)
	require.NoError(t, err)

	velocity, err := SimulateVelocity(12000, 0, 1000, 2000, Monthly)
	require.NoError(t, err)

	_, err = CompareSavings(standard, velocity)
	assert.ErrorIs(t, err, ErrDivisionUndefined)
}
