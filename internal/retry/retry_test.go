package retry

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fast = Config{Attempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestDo_SucceedsFirstTry(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := Do(context.Background(), fast, "op", func(context.Context) (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := Do(context.Background(), fast, "op", func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", eris.New("transient")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	boom := eris.New("boom")
	_, err := Do(context.Background(), fast, "op", func(context.Context) (int, error) {
		calls++
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	t.Parallel()

	cfg := fast
	cfg.Retryable = func(error) bool { return false }

	calls := 0
	_, err := Do(context.Background(), cfg, "op", func(context.Context) (int, error) {
		calls++
		return 0, eris.New("fatal")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelStops(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Do(ctx, fast, "op", func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, eris.New("transient")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDelayCapped(t *testing.T) {
	t.Parallel()

	cfg := Config{BaseDelay: time.Second, MaxDelay: 2 * time.Second, Multiplier: 10}.withDefaults()
	assert.LessOrEqual(t, cfg.delay(5), time.Duration(float64(2*time.Second)*1.25)+time.Millisecond)
}
