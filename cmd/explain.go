package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/velobank/velocity-cli/internal/advisor"
	anthropicpkg "github.com/velobank/velocity-cli/pkg/anthropic"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Optimize and explain the result in plain language",
	Long:  "Runs the chunk optimization, then explains the result. Uses the Anthropic API when a key is configured; otherwise renders a deterministic template.",
	RunE: func(cmd *cobra.Command, args []string) error {
		freq, goal, method, cons, err := optimizeParams()
		if err != nil {
			return err
		}

		res, err := newOptimizer().Optimize(optBalance, optRate, optPayment, cons, freq, goal, method)
		if err != nil {
			return err
		}

		var client anthropicpkg.Client
		if cfg.Anthropic.Key != "" {
			client = anthropicpkg.NewClient(cfg.Anthropic.Key)
		} else {
			zap.L().Debug("no anthropic key configured, using template explanation")
		}

		adv := advisor.New(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
		explanation, err := adv.Explain(cmd.Context(), res, cons)
		if err != nil {
			return err
		}

		if err := printJSON(res); err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(explanation)
		return nil
	},
}

func init() {
	addLoanFlags(explainCmd, true)
	explainCmd.Flags().StringVar(&optGoal, "goal", "balanced", "objective: interest, time, balanced")
	explainCmd.Flags().StringVar(&optMethod, "method", "global", "search method: local, global, grid")
	rootCmd.AddCommand(explainCmd)
}
