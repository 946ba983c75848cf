package main

import (
	"github.com/spf13/cobra"

	"github.com/velobank/velocity-cli/internal/engine"
	"github.com/velobank/velocity-cli/internal/optimize"
)

var (
	optBalance   float64
	optRate      float64
	optPayment   float64
	optLOC       float64
	optIncome    float64
	optExpenses  float64
	optFrequency string
	optGoal      string
	optMethod    string
)

// optimizeParams parses the shared optimize flag set.
func optimizeParams() (engine.Frequency, optimize.Goal, optimize.Method, optimize.Constraints, error) {
	freq, err := engine.ParseFrequency(optFrequency)
	if err != nil {
		return 0, "", "", optimize.Constraints{}, err
	}
	goal, err := optimize.ParseGoal(optGoal)
	if err != nil {
		return 0, "", "", optimize.Constraints{}, err
	}
	method, err := optimize.ParseMethod(optMethod)
	if err != nil {
		return 0, "", "", optimize.Constraints{}, err
	}
	cons := optimize.DeriveConstraints(optLOC, optIncome, optExpenses)
	return freq, goal, method, cons, nil
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search for the optimal chunk payment amount",
	RunE: func(cmd *cobra.Command, args []string) error {
		freq, goal, method, cons, err := optimizeParams()
		if err != nil {
			return err
		}

		res, err := newOptimizer().Optimize(optBalance, optRate, optPayment, cons, freq, goal, method)
		if err != nil {
			return err
		}

		return printJSON(map[string]any{
			"result":      res,
			"constraints": cons,
		})
	},
}

var compareMethodsCmd = &cobra.Command{
	Use:   "compare-methods",
	Short: "Run the optimization once per search method and compare",
	RunE: func(cmd *cobra.Command, args []string) error {
		freq, goal, _, cons, err := optimizeParams()
		if err != nil {
			return err
		}

		results, err := newOptimizer().CompareMethods(cmd.Context(), optBalance, optRate, optPayment, cons, freq, goal)
		if err != nil {
			return err
		}

		return printJSON(map[string]any{
			"methods":     results,
			"constraints": cons,
		})
	},
}

var paretoCmd = &cobra.Command{
	Use:   "pareto",
	Short: "Optimize each objective independently with the global search",
	RunE: func(cmd *cobra.Command, args []string) error {
		freq, _, _, cons, err := optimizeParams()
		if err != nil {
			return err
		}

		results, err := newOptimizer().ParetoSet(cmd.Context(), optBalance, optRate, optPayment, cons, freq)
		if err != nil {
			return err
		}

		return printJSON(map[string]any{
			"results":     results,
			"constraints": cons,
		})
	},
}

var (
	sensChunk        float64
	sensPerturbation float64
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Perturb rate, chunk, and payment one at a time and diff the payoff",
	RunE: func(cmd *cobra.Command, args []string) error {
		freq, err := engine.ParseFrequency(optFrequency)
		if err != nil {
			return err
		}

		sens, err := newOptimizer().Sensitivity(optBalance, optRate, optPayment, sensChunk, freq, sensPerturbation)
		if err != nil {
			return err
		}
		return printJSON(sens)
	},
}

// addLoanFlags registers the loan/cash-flow flag set shared by the optimize
// family of commands.
func addLoanFlags(cmd *cobra.Command, withConstraints bool) {
	cmd.Flags().Float64Var(&optBalance, "balance", 0, "current mortgage balance (required)")
	cmd.Flags().Float64Var(&optRate, "rate", 0, "annual interest rate percent")
	cmd.Flags().Float64Var(&optPayment, "payment", 0, "regular monthly payment (required)")
	cmd.Flags().StringVar(&optFrequency, "frequency", "monthly", "chunk cadence: monthly, quarterly, annual")
	_ = cmd.MarkFlagRequired("balance")
	_ = cmd.MarkFlagRequired("payment")

	if withConstraints {
		cmd.Flags().Float64Var(&optLOC, "loc", 0, "available line of credit (required)")
		cmd.Flags().Float64Var(&optIncome, "income", 0, "monthly income (required)")
		cmd.Flags().Float64Var(&optExpenses, "expenses", 0, "monthly expenses (required)")
		_ = cmd.MarkFlagRequired("loc")
		_ = cmd.MarkFlagRequired("income")
		_ = cmd.MarkFlagRequired("expenses")
	}
}

func init() {
	addLoanFlags(optimizeCmd, true)
	optimizeCmd.Flags().StringVar(&optGoal, "goal", "balanced", "objective: interest, time, balanced")
	optimizeCmd.Flags().StringVar(&optMethod, "method", "global", "search method: local, global, grid")

	addLoanFlags(compareMethodsCmd, true)
	compareMethodsCmd.Flags().StringVar(&optGoal, "goal", "balanced", "objective: interest, time, balanced")

	addLoanFlags(paretoCmd, true)

	addLoanFlags(sensitivityCmd, false)
	sensitivityCmd.Flags().Float64Var(&sensChunk, "chunk", 0, "chunk amount to analyze (required)")
	sensitivityCmd.Flags().Float64Var(&sensPerturbation, "perturbation", 0.1, "perturbation fraction (0.1 = +10%)")
	_ = sensitivityCmd.MarkFlagRequired("chunk")

	optimizeCmd.AddCommand(compareMethodsCmd, paretoCmd, sensitivityCmd)
	rootCmd.AddCommand(optimizeCmd)
}
