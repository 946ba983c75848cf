package optimize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// quadratic with a known interior minimum at x=7000.
func quadratic(x float64) float64 {
	return (x - 7000) * (x - 7000)
}

func TestLocalSearch_ConvexMinimum(t *testing.T) {
	t.Parallel()

	x, converged := localSearch(quadratic, 1000, 20000, 1000, 1e-6)
	assert.True(t, converged)
	assert.InDelta(t, 7000, x, 1)
}

func TestLocalSearch_DegenerateInterval(t *testing.T) {
	t.Parallel()

	x, converged := localSearch(quadratic, 5000, 5000, 1000, 1e-6)
	assert.True(t, converged)
	assert.Equal(t, 5000.0, x)
}

func TestLocalSearch_BoundaryMinimum(t *testing.T) {
	t.Parallel()

	// Monotone decreasing: the minimum sits on the upper bound.
	x, converged := localSearch(func(x float64) float64 { return -x }, 1000, 20000, 1000, 1e-6)
	assert.True(t, converged)
	assert.InDelta(t, 20000, x, 1)
}

func TestDifferentialEvolution_ConvexMinimum(t *testing.T) {
	t.Parallel()

	x, converged := differentialEvolution(quadratic, 1000, 20000, 1000, 15, 1e-6, 42)
	assert.True(t, converged)
	assert.InDelta(t, 7000, x, 10)
}

func TestDifferentialEvolution_Deterministic(t *testing.T) {
	t.Parallel()

	a, _ := differentialEvolution(quadratic, 1000, 20000, 1000, 15, 1e-6, 42)
	b, _ := differentialEvolution(quadratic, 1000, 20000, 1000, 15, 1e-6, 42)
	assert.Equal(t, a, b)
}

func TestDifferentialEvolution_ReportsNonConvergence(t *testing.T) {
	t.Parallel()

	// One generation over a rugged objective cannot collapse the population.
	rugged := func(x float64) float64 { return math.Sin(x) * x }
	_, converged := differentialEvolution(rugged, 1000, 20000, 1, 15, 1e-12, 42)
	assert.False(t, converged)
}

func TestGridSearch(t *testing.T) {
	t.Parallel()

	x := gridSearch(quadratic, 1000, 20000)
	// Closest grid point to 7000 on a 50-point grid over [1000, 20000].
	assert.InDelta(t, 7000, x, (20000-1000)/float64(gridPoints-1))

	// Degenerate interval returns the lower bound.
	assert.Equal(t, 5000.0, gridSearch(quadratic, 5000, 5000))
}

func TestGridSearch_FirstStrictMinimumWins(t *testing.T) {
	t.Parallel()

	// Constant objective: every point ties, the first one is kept.
	x := gridSearch(func(float64) float64 { return 1 }, 1000, 20000)
	assert.Equal(t, 1000.0, x)
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5.0, clamp(5, 0, 10))
	assert.Equal(t, 0.0, clamp(-1, 0, 10))
	assert.Equal(t, 10.0, clamp(11, 0, 10))
}
