// Package advisor turns optimization results into plain-language strategy
// explanations, via the Anthropic API when configured or a deterministic
// template otherwise.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/velobank/velocity-cli/internal/optimize"
	"github.com/velobank/velocity-cli/internal/retry"
	"github.com/velobank/velocity-cli/pkg/anthropic"
)

const systemPrompt = `You are a financial analyst explaining a velocity banking
optimization result to a homeowner. Velocity banking applies lump-sum "chunk"
principal payments to a mortgage, funded by drawing on a HELOC that is repaid
from monthly free cash flow. Explain what the recommended chunk amount means,
the payoff timeline, the interest saved, and the cash-flow commitment. Be
concrete, avoid jargon, and do not give personalized financial advice beyond
interpreting the numbers given. Keep it under 200 words.`

// Advisor explains optimization results.
type Advisor struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// New creates an Advisor. A nil client makes Explain fall back to the
// deterministic template.
func New(client anthropic.Client, model string, maxTokens int64) *Advisor {
	return &Advisor{client: client, model: model, maxTokens: maxTokens}
}

// Explain produces a narrative explanation of an optimization result.
func (a *Advisor) Explain(ctx context.Context, res *optimize.Result, cons optimize.Constraints) (string, error) {
	if a.client == nil {
		return TemplateExplanation(res, cons), nil
	}

	retryCfg := retry.Default()
	retryCfg.Retryable = anthropic.Retryable

	resp, err := retry.Do(ctx, retryCfg, "anthropic.messages", func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return a.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     a.model,
			MaxTokens: a.maxTokens,
			System:    systemPrompt,
			Messages: []anthropic.Message{
				{Role: "user", Content: resultPrompt(res, cons)},
			},
		})
	})
	if err != nil {
		return "", eris.Wrap(err, "advisor: explain")
	}

	zap.L().Debug("advisor explanation generated",
		zap.String("model", resp.Model),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)

	return resp.Text, nil
}

func resultPrompt(res *optimize.Result, cons optimize.Constraints) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Optimization result (goal %s, method %s):\n", res.Goal, res.Method)
	fmt.Fprintf(&b, "- Optimal chunk: $%.2f every cycle\n", res.OptimalChunk)
	fmt.Fprintf(&b, "- Months to payoff: %d\n", res.MonthsToPayoff)
	fmt.Fprintf(&b, "- Total interest: $%.2f (saving $%.2f vs no chunks)\n", res.TotalInterest, res.InterestSaved)
	fmt.Fprintf(&b, "- Monthly cash-flow impact: $%.2f over a 3-month HELOC repayment\n", res.MonthlyCashflowImpact)
	fmt.Fprintf(&b, "- Strategy class: %s, confidence %.2f, converged: %t\n", res.StrategyType, res.ConfidenceScore, res.Converged)
	fmt.Fprintf(&b, "- Credit line: $%.2f available, search bounds [$%.2f, $%.2f]\n", cons.AvailableLOC, cons.MinChunk, cons.MaxChunk)
	fmt.Fprintf(&b, "- Monthly income $%.2f, expenses $%.2f\n", cons.MonthlyIncome, cons.MonthlyExpenses)
	return b.String()
}

// TemplateExplanation renders a fixed-format explanation without calling any
// external API.
func TemplateExplanation(res *optimize.Result, cons optimize.Constraints) string {
	years := res.MonthsToPayoff / 12
	months := res.MonthsToPayoff % 12

	var b strings.Builder
	fmt.Fprintf(&b, "A %s strategy: draw $%.2f from your credit line each chunk cycle.\n", res.StrategyType, res.OptimalChunk)
	fmt.Fprintf(&b, "The mortgage pays off in %d months (%dy %dm) with $%.2f total interest, saving $%.2f versus the standard schedule.\n",
		res.MonthsToPayoff, years, months, res.TotalInterest, res.InterestSaved)
	fmt.Fprintf(&b, "Repaying each draw over 3 months commits about $%.2f of monthly cash flow (income $%.2f, expenses $%.2f).\n",
		res.MonthlyCashflowImpact, cons.MonthlyIncome, cons.MonthlyExpenses)
	fmt.Fprintf(&b, "Confidence in this result is %.2f out of 1.00", res.ConfidenceScore)
	if !res.Converged {
		b.WriteString(" (the search did not fully converge; treat the amount as a best-found point)")
	}
	b.WriteString(".")
	return b.String()
}
