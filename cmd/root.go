package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/velobank/velocity-cli/internal/config"
	"github.com/velobank/velocity-cli/internal/optimize"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "velocity-cli",
	Short: "Mortgage payoff strategy simulator and optimizer",
	Long:  "Simulates velocity banking schedules (HELOC-funded chunk principal payments against an amortizing mortgage) and searches for the chunk amount best trading off payoff time and interest cost.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newOptimizer builds an Optimizer from config, falling back to the standard
// tuning for unset values.
func newOptimizer() *optimize.Optimizer {
	o := optimize.New()
	if cfg.Optimize.MaxIterations > 0 {
		o.MaxIterations = cfg.Optimize.MaxIterations
	}
	if cfg.Optimize.Tolerance > 0 {
		o.Tolerance = cfg.Optimize.Tolerance
	}
	if cfg.Optimize.Seed != 0 {
		o.Seed = cfg.Optimize.Seed
	}
	if cfg.Optimize.PopulationSize > 0 {
		o.PopulationSize = cfg.Optimize.PopulationSize
	}
	return o
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
