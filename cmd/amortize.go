package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/velobank/velocity-cli/internal/engine"
	"github.com/velobank/velocity-cli/internal/export"
)

var (
	amortizePrincipal float64
	amortizeRate      float64
	amortizePayment   float64
	amortizeTerm      int
	amortizeXLSX      string
)

var amortizeCmd = &cobra.Command{
	Use:   "amortize",
	Short: "Generate a standard amortization schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		payment := amortizePayment
		if payment == 0 {
			// No payment given: solve for the fixed payment over the term.
			p, err := engine.MonthlyPayment(amortizePrincipal, amortizeRate, amortizeTerm)
			if err != nil {
				return err
			}
			payment = p
			zap.L().Info("solved monthly payment",
				zap.Float64("monthly_payment", payment),
				zap.Int("term_months", amortizeTerm),
			)
		}

		sched, err := engine.Amortize(amortizePrincipal, amortizeRate, payment)
		if err != nil {
			return err
		}

		if sched.Truncated() {
			zap.L().Warn("loan does not amortize within 30 years at this payment; schedule truncated",
				zap.Float64("remaining_balance", sched.Entries[len(sched.Entries)-1].Balance),
			)
		}

		if amortizeXLSX != "" {
			if err := export.ScheduleXLSX(sched, amortizeXLSX); err != nil {
				return eris.Wrap(err, "export schedule")
			}
			zap.L().Info("schedule exported", zap.String("path", amortizeXLSX))
		}

		return printJSON(sched)
	},
}

func init() {
	amortizeCmd.Flags().Float64Var(&amortizePrincipal, "principal", 0, "loan principal (required)")
	amortizeCmd.Flags().Float64Var(&amortizeRate, "rate", 0, "annual interest rate percent")
	amortizeCmd.Flags().Float64Var(&amortizePayment, "payment", 0, "fixed monthly payment (omit to solve from term)")
	amortizeCmd.Flags().IntVar(&amortizeTerm, "term", 360, "term in months, used when --payment is omitted")
	amortizeCmd.Flags().StringVar(&amortizeXLSX, "xlsx", "", "write the schedule to this XLSX file")
	_ = amortizeCmd.MarkFlagRequired("principal")
	rootCmd.AddCommand(amortizeCmd)
}
