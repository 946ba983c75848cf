package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/velobank/velocity-cli/internal/engine"
	"github.com/velobank/velocity-cli/internal/optimize"
)

var (
	batchFile        string
	batchConcurrency int
)

// batchScenario is one optimization request in a batch file.
type batchScenario struct {
	Name            string  `yaml:"name"`
	Balance         float64 `yaml:"balance"`
	InterestRate    float64 `yaml:"interest_rate"`
	MonthlyPayment  float64 `yaml:"monthly_payment"`
	AvailableLOC    float64 `yaml:"available_loc"`
	MonthlyIncome   float64 `yaml:"monthly_income"`
	MonthlyExpenses float64 `yaml:"monthly_expenses"`
	Frequency       string  `yaml:"frequency"`
	Goal            string  `yaml:"goal"`
	Method          string  `yaml:"method"`
}

// batchOutcome pairs a scenario name with its result or error.
type batchOutcome struct {
	Name        string               `json:"name"`
	Result      *optimize.Result     `json:"result,omitempty"`
	Constraints optimize.Constraints `json:"constraints"`
	Error       string               `json:"error,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Optimize a YAML file of scenarios concurrently",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(batchFile)
		if err != nil {
			return eris.Wrapf(err, "read batch file %s", batchFile)
		}

		var scenarios []batchScenario
		if err := yaml.Unmarshal(data, &scenarios); err != nil {
			return eris.Wrap(err, "parse batch file")
		}
		if len(scenarios) == 0 {
			zap.L().Info("no scenarios in batch file")
			return nil
		}

		zap.L().Info("processing batch",
			zap.Int("scenarios", len(scenarios)),
			zap.Int("concurrency", batchConcurrency),
		)

		opt := newOptimizer()
		outcomes := make([]batchOutcome, len(scenarios))

		g, _ := errgroup.WithContext(cmd.Context())
		g.SetLimit(batchConcurrency)
		for i, sc := range scenarios {
			g.Go(func() error {
				outcomes[i] = runScenario(opt, sc)
				return nil // individual failures don't abort the batch
			})
		}
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "batch processing")
		}

		return printJSON(outcomes)
	},
}

func runScenario(opt *optimize.Optimizer, sc batchScenario) batchOutcome {
	out := batchOutcome{Name: sc.Name}

	freq := engine.Monthly
	if sc.Frequency != "" {
		f, err := engine.ParseFrequency(sc.Frequency)
		if err != nil {
			out.Error = err.Error()
			return out
		}
		freq = f
	}
	goal := optimize.GoalBalanced
	if sc.Goal != "" {
		g, err := optimize.ParseGoal(sc.Goal)
		if err != nil {
			out.Error = err.Error()
			return out
		}
		goal = g
	}
	method := optimize.MethodGlobal
	if sc.Method != "" {
		m, err := optimize.ParseMethod(sc.Method)
		if err != nil {
			out.Error = err.Error()
			return out
		}
		method = m
	}

	cons := optimize.DeriveConstraints(sc.AvailableLOC, sc.MonthlyIncome, sc.MonthlyExpenses)
	out.Constraints = cons

	res, err := opt.Optimize(sc.Balance, sc.InterestRate, sc.MonthlyPayment, cons, freq, goal, method)
	if err != nil {
		zap.L().Error("scenario failed", zap.String("name", sc.Name), zap.Error(err))
		out.Error = err.Error()
		return out
	}

	out.Result = res
	return out
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "YAML scenario file (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "max scenarios optimized in parallel")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}
