package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/velobank/velocity-cli/internal/model"
	"github.com/velobank/velocity-cli/internal/store"
)

// openStore opens and migrates the configured record store.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

var mortgageCmd = &cobra.Command{
	Use:   "mortgage",
	Short: "Manage stored mortgage records",
}

var (
	mortgagePrincipal float64
	mortgageBalance   float64
	mortgageRate      float64
	mortgagePayment   float64
	mortgageTerm      int
	mortgageIncome    float64
	mortgageExpenses  float64
)

var mortgageAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a mortgage record",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		balance := mortgageBalance
		if balance == 0 {
			balance = mortgagePrincipal
		}

		m, err := st.CreateMortgage(cmd.Context(), model.Mortgage{
			Principal:       mortgagePrincipal,
			CurrentBalance:  balance,
			InterestRate:    mortgageRate,
			MonthlyPayment:  mortgagePayment,
			TermMonths:      mortgageTerm,
			MonthlyIncome:   mortgageIncome,
			MonthlyExpenses: mortgageExpenses,
		})
		if err != nil {
			return err
		}
		return printJSON(m)
	},
}

var mortgageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored mortgage records",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		ms, err := st.ListMortgages(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(ms)
	},
}

var mortgageDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a mortgage record and its HELOCs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		return st.DeleteMortgage(cmd.Context(), args[0])
	},
}

var helocCmd = &cobra.Command{
	Use:   "heloc",
	Short: "Manage stored HELOC records",
}

var (
	helocMortgageID string
	helocLimit      float64
	helocBalance    float64
	helocRate       float64
	helocMinPayment float64
)

var helocAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a HELOC record attached to a mortgage",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := st.GetMortgage(cmd.Context(), helocMortgageID); err != nil {
			return err
		}

		h, err := st.CreateHELOC(cmd.Context(), model.HELOC{
			MortgageID:     helocMortgageID,
			CreditLimit:    helocLimit,
			CurrentBalance: helocBalance,
			InterestRate:   helocRate,
			MinimumPayment: helocMinPayment,
		})
		if err != nil {
			return err
		}
		return printJSON(h)
	},
}

var helocListCmd = &cobra.Command{
	Use:   "list <mortgage-id>",
	Short: "List HELOCs attached to a mortgage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		hs, err := st.ListHELOCs(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(hs)
	},
}

func init() {
	mortgageAddCmd.Flags().Float64Var(&mortgagePrincipal, "principal", 0, "original principal (required)")
	mortgageAddCmd.Flags().Float64Var(&mortgageBalance, "balance", 0, "current balance (defaults to principal)")
	mortgageAddCmd.Flags().Float64Var(&mortgageRate, "rate", 0, "annual interest rate percent")
	mortgageAddCmd.Flags().Float64Var(&mortgagePayment, "payment", 0, "monthly payment (required)")
	mortgageAddCmd.Flags().IntVar(&mortgageTerm, "term", 360, "term in months")
	mortgageAddCmd.Flags().Float64Var(&mortgageIncome, "income", 0, "monthly household income")
	mortgageAddCmd.Flags().Float64Var(&mortgageExpenses, "expenses", 0, "monthly household expenses")
	_ = mortgageAddCmd.MarkFlagRequired("principal")
	_ = mortgageAddCmd.MarkFlagRequired("payment")

	helocAddCmd.Flags().StringVar(&helocMortgageID, "mortgage-id", "", "mortgage to attach to (required)")
	helocAddCmd.Flags().Float64Var(&helocLimit, "limit", 0, "credit limit (required)")
	helocAddCmd.Flags().Float64Var(&helocBalance, "balance", 0, "current drawn balance")
	helocAddCmd.Flags().Float64Var(&helocRate, "rate", 0, "annual interest rate percent")
	helocAddCmd.Flags().Float64Var(&helocMinPayment, "min-payment", 0, "minimum monthly payment")
	_ = helocAddCmd.MarkFlagRequired("mortgage-id")
	_ = helocAddCmd.MarkFlagRequired("limit")

	mortgageCmd.AddCommand(mortgageAddCmd, mortgageListCmd, mortgageDeleteCmd)
	helocCmd.AddCommand(helocAddCmd, helocListCmd)
	rootCmd.AddCommand(mortgageCmd, helocCmd)
}
