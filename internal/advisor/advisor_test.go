package advisor

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velobank/velocity-cli/internal/optimize"
	"github.com/velobank/velocity-cli/pkg/anthropic"
)

type fakeClient struct {
	lastReq anthropic.MessageRequest
	resp    *anthropic.MessageResponse
	err     error
}

func (f *fakeClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func testResult() *optimize.Result {
	return &optimize.Result{
		OptimalChunk:          7500,
		MonthsToPayoff:        142,
		TotalInterest:         68000.12,
		InterestSaved:         41000.50,
		MonthlyCashflowImpact: 2500,
		ConfidenceScore:       0.8,
		StrategyType:          optimize.StrategyConservative,
		Converged:             true,
		Goal:                  optimize.GoalBalanced,
		Method:                optimize.MethodGlobal,
	}
}

func testConstraints() optimize.Constraints {
	return optimize.Constraints{
		MinChunk: 1250, MaxChunk: 15000, AvailableLOC: 50000,
		MonthlyIncome: 7000, MonthlyExpenses: 4500,
	}
}

func TestExplain_UsesClient(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{resp: &anthropic.MessageResponse{
		Model: "test-model",
		Text:  "your chunks save real money",
	}}
	adv := New(fake, "test-model", 512)

	out, err := adv.Explain(context.Background(), testResult(), testConstraints())
	require.NoError(t, err)
	assert.Equal(t, "your chunks save real money", out)

	assert.Equal(t, "test-model", fake.lastReq.Model)
	assert.Equal(t, int64(512), fake.lastReq.MaxTokens)
	assert.NotEmpty(t, fake.lastReq.System)
	require.Len(t, fake.lastReq.Messages, 1)
	assert.Equal(t, "user", fake.lastReq.Messages[0].Role)
	assert.Contains(t, fake.lastReq.Messages[0].Content, "7500.00")
	assert.Contains(t, fake.lastReq.Messages[0].Content, "142")
}

func TestExplain_ClientError(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{err: eris.New("api down")}
	adv := New(fake, "test-model", 512)

	_, err := adv.Explain(context.Background(), testResult(), testConstraints())
	assert.Error(t, err)
}

func TestExplain_NilClientFallsBack(t *testing.T) {
	t.Parallel()

	adv := New(nil, "", 0)
	out, err := adv.Explain(context.Background(), testResult(), testConstraints())
	require.NoError(t, err)
	assert.Equal(t, TemplateExplanation(testResult(), testConstraints()), out)
}

func TestTemplateExplanation(t *testing.T) {
	t.Parallel()

	out := TemplateExplanation(testResult(), testConstraints())
	assert.Contains(t, out, "conservative")
	assert.Contains(t, out, "$7500.00")
	assert.Contains(t, out, "142 months (11y 10m)")
	assert.NotContains(t, out, "did not fully converge")

	res := testResult()
	res.Converged = false
	out = TemplateExplanation(res, testConstraints())
	assert.Contains(t, out, "did not fully converge")
}
