package optimize

import (
	"math"
	"math/rand"
)

// gridPoints is the fixed resolution of the exhaustive grid search.
const gridPoints = 50

// Differential evolution tuning. The mutation factor follows the usual
// best/1 scheme; with a single decision variable binomial crossover always
// takes the mutant, so no crossover rate is needed.
const (
	defaultPopulationSize = 15
	mutationFactor        = 0.8
)

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// localSearch minimizes f over [lo, hi] by bounded pattern descent from the
// interval midpoint: probe one step either side, move to any improvement,
// halve the step on a stall. Cheap and deterministic, but the payoff-month
// objective is a step function of chunk, so this can settle on a local
// plateau rather than the global minimum.
func localSearch(f func(float64) float64, lo, hi float64, maxIter int, tol float64) (float64, bool) {
	if hi-lo <= tol {
		return lo, true
	}

	x := (lo + hi) / 2
	fx := f(x)
	step := (hi - lo) / 4

	for i := 0; i < maxIter; i++ {
		if step <= tol {
			return x, true
		}
		moved := false
		for _, cand := range [2]float64{clamp(x-step, lo, hi), clamp(x+step, lo, hi)} {
			if fc := f(cand); fc < fx {
				x, fx = cand, fc
				moved = true
			}
		}
		if !moved {
			step /= 2
		}
	}
	return x, false
}

// differentialEvolution minimizes f over [lo, hi] with a seeded best/1
// population search. Converges when the population's objective values
// collapse within tolerance; exhausting maxIter without collapsing reports
// the best point found with converged=false.
func differentialEvolution(f func(float64) float64, lo, hi float64, maxIter, popSize int, tol float64, seed int64) (float64, bool) {
	if hi-lo <= tol {
		return lo, true
	}
	if popSize < 4 {
		popSize = 4
	}

	rng := rand.New(rand.NewSource(seed))

	pop := make([]float64, popSize)
	vals := make([]float64, popSize)
	bestIdx := 0
	for i := range pop {
		pop[i] = lo + rng.Float64()*(hi-lo)
		vals[i] = f(pop[i])
		if vals[i] < vals[bestIdx] {
			bestIdx = i
		}
	}

	for gen := 0; gen < maxIter; gen++ {
		for i := range pop {
			a := rng.Intn(popSize)
			for a == i {
				a = rng.Intn(popSize)
			}
			b := rng.Intn(popSize)
			for b == i || b == a {
				b = rng.Intn(popSize)
			}

			trial := clamp(pop[bestIdx]+mutationFactor*(pop[a]-pop[b]), lo, hi)
			if fv := f(trial); fv <= vals[i] {
				pop[i], vals[i] = trial, fv
				if fv < vals[bestIdx] {
					bestIdx = i
				}
			}
		}

		minV, maxV, sum := vals[0], vals[0], 0.0
		for _, v := range vals {
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
			sum += v
		}
		if maxV-minV <= tol+tol*math.Abs(sum/float64(popSize)) {
			return pop[bestIdx], true
		}
	}

	return pop[bestIdx], false
}

// gridSearch evaluates f at gridPoints equally spaced values across [lo, hi]
// and returns the first minimizer. No convergence concept applies.
func gridSearch(f func(float64) float64, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}

	best := lo
	bestV := math.Inf(1)
	for i := 0; i < gridPoints; i++ {
		x := lo + (hi-lo)*float64(i)/float64(gridPoints-1)
		if v := f(x); v < bestV {
			best, bestV = x, v
		}
	}
	return best
}
