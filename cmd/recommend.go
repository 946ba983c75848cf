package main

import (
	"github.com/spf13/cobra"

	"github.com/velobank/velocity-cli/internal/engine"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a chunk amount from cash flow and credit headroom",
	Long:  "Heuristic recommendation (no search): the smaller of 80% of the available line and three months of net cash flow, with what-if scenarios at 50/75/100% of the recommended amount.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := engine.RecommendChunk(optBalance, optRate, optPayment, optLOC, optIncome, optExpenses)
		if err != nil {
			return err
		}
		return printJSON(rec)
	},
}

func init() {
	recommendCmd.Flags().Float64Var(&optBalance, "balance", 0, "current mortgage balance (required)")
	recommendCmd.Flags().Float64Var(&optRate, "rate", 0, "annual interest rate percent")
	recommendCmd.Flags().Float64Var(&optPayment, "payment", 0, "regular monthly payment (required)")
	recommendCmd.Flags().Float64Var(&optLOC, "loc", 0, "available line of credit (required)")
	recommendCmd.Flags().Float64Var(&optIncome, "income", 0, "monthly income (required)")
	recommendCmd.Flags().Float64Var(&optExpenses, "expenses", 0, "monthly expenses (required)")
	_ = recommendCmd.MarkFlagRequired("balance")
	_ = recommendCmd.MarkFlagRequired("payment")
	_ = recommendCmd.MarkFlagRequired("loc")
	_ = recommendCmd.MarkFlagRequired("income")
	_ = recommendCmd.MarkFlagRequired("expenses")
	rootCmd.AddCommand(recommendCmd)
}
