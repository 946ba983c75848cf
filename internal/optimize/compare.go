package optimize

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/velobank/velocity-cli/internal/engine"
)

// MethodResult pairs a search method with its optimization outcome.
type MethodResult struct {
	Method Method  `json:"method"`
	Result *Result `json:"result"`
}

// CompareMethods runs the same optimization once per search method. Runs are
// independent and execute concurrently; output order always follows the
// canonical method order so results are comparable across invocations.
func (o *Optimizer) CompareMethods(ctx context.Context, balance, annualRate, monthlyPayment float64, cons Constraints, freq engine.Frequency, goal Goal) ([]MethodResult, error) {
	results := make([]MethodResult, len(Methods))

	g, _ := errgroup.WithContext(ctx)
	for i, method := range Methods {
		g.Go(func() error {
			res, err := o.Optimize(balance, annualRate, monthlyPayment, cons, freq, goal, method)
			if err != nil {
				return err
			}
			results[i] = MethodResult{Method: method, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// ParetoSet runs the global search once per objective and returns all three
// results unranked, in canonical goal order. This is a three-point
// approximation, not a dominance-filtered frontier: each result only
// optimizes its own stated goal.
func (o *Optimizer) ParetoSet(ctx context.Context, balance, annualRate, monthlyPayment float64, cons Constraints, freq engine.Frequency) ([]*Result, error) {
	results := make([]*Result, len(Goals))

	g, _ := errgroup.WithContext(ctx)
	for i, goal := range Goals {
		g.Go(func() error {
			res, err := o.Optimize(balance, annualRate, monthlyPayment, cons, freq, goal, MethodGlobal)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
