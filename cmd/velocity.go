package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/velobank/velocity-cli/internal/engine"
	"github.com/velobank/velocity-cli/internal/export"
)

var (
	velocityBalance   float64
	velocityRate      float64
	velocityPayment   float64
	velocityChunk     float64
	velocityFrequency string
	velocityCompare   bool
	velocityXLSX      string
)

var velocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Simulate a velocity banking schedule with chunk payments",
	RunE: func(cmd *cobra.Command, args []string) error {
		freq, err := engine.ParseFrequency(velocityFrequency)
		if err != nil {
			return err
		}

		sched, err := engine.SimulateVelocity(velocityBalance, velocityRate, velocityPayment, velocityChunk, freq)
		if err != nil {
			return err
		}

		if velocityXLSX != "" {
			if err := export.ScheduleXLSX(sched, velocityXLSX); err != nil {
				return eris.Wrap(err, "export schedule")
			}
			zap.L().Info("schedule exported", zap.String("path", velocityXLSX))
		}

		if !velocityCompare {
			return printJSON(sched)
		}

		standard, err := engine.Amortize(velocityBalance, velocityRate, velocityPayment)
		if err != nil {
			return err
		}
		savings, err := engine.CompareSavings(standard, sched)
		if err != nil {
			return err
		}

		return printJSON(map[string]any{
			"standard": standard,
			"velocity": sched,
			"savings":  savings,
		})
	},
}

func init() {
	velocityCmd.Flags().Float64Var(&velocityBalance, "balance", 0, "current mortgage balance (required)")
	velocityCmd.Flags().Float64Var(&velocityRate, "rate", 0, "annual interest rate percent")
	velocityCmd.Flags().Float64Var(&velocityPayment, "payment", 0, "regular monthly payment (required)")
	velocityCmd.Flags().Float64Var(&velocityChunk, "chunk", 0, "chunk payment amount")
	velocityCmd.Flags().StringVar(&velocityFrequency, "frequency", "monthly", "chunk cadence: monthly, quarterly, annual")
	velocityCmd.Flags().BoolVar(&velocityCompare, "compare", false, "include the standard baseline and savings diff")
	velocityCmd.Flags().StringVar(&velocityXLSX, "xlsx", "", "write the schedule to this XLSX file")
	_ = velocityCmd.MarkFlagRequired("balance")
	_ = velocityCmd.MarkFlagRequired("payment")
	rootCmd.AddCommand(velocityCmd)
}
