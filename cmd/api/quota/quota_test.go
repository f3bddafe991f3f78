package quota

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vb-capital-ai/config"
)

func TestZeroConfigIsUnlimited(t *testing.T) {
	l := NewLimiter(config.QuotaConfig{})
	assert.True(t, l.Unlimited())
	for i := 0; i < 100; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestDailyLimitRefusesAfterCap(t *testing.T) {
	l := NewLimiter(config.QuotaConfig{RequestsPerDay: 2})

	for i := 0; i < 2; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.WaitAndReserve(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDailyLimitResetsOnNewDay(t *testing.T) {
	day := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)
	l := NewLimiter(config.QuotaConfig{RequestsPerDay: 1})
	l.now = func() time.Time { return day }

	ok, _ := l.WaitAndReserve(context.Background())
	assert.True(t, ok)
	ok, _ = l.WaitAndReserve(context.Background())
	assert.False(t, ok)

	day = day.Add(2 * time.Minute)
	ok, _ = l.WaitAndReserve(context.Background())
	assert.True(t, ok)
}

func TestPerMinuteIntervalWaitsHonoringContext(t *testing.T) {
	l := NewLimiter(config.QuotaConfig{RequestsPerMinute: 1})

	ok, err := l.WaitAndReserve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	ok, err = l.WaitAndReserve(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
