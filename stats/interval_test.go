package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/flipper/exchange"
)

func flipHistory(t0 time.Time) []exchange.Trade {
	return []exchange.Trade{
		tr(true, 100, 10, t0),
		tr(false, 120, 10, t0.Add(time.Hour)),
	}
}

func TestIntervalBasicFlip(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := Interval(flipHistory(t0), t0.Add(-time.Hour))
	assert.Equal(t, int64(1200), s.Revenue)
	assert.Equal(t, int64(1000), s.Expense)
	assert.Equal(t, int64(200), s.Profit)
	assert.Equal(t, int64(10), s.Quantity)
	require.True(t, s.HasAvgBuy)
	assert.InDelta(t, 100, s.AvgBuyPrice, 1e-9)
	require.True(t, s.HasAvgSell)
	assert.InDelta(t, 120, s.AvgSellPrice, 1e-9)
	require.True(t, s.HasROI)
	assert.InDelta(t, 20.0, s.ROIPercent, 1e-9)
}

func TestIntervalStartBeforeEarliestEqualsUnrestricted(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	history := flipHistory(t0)

	all := Interval(history, time.Time{})
	early := Interval(history, t0.Add(-24*time.Hour))
	assert.Equal(t, all, early)
}

func TestIntervalStartAfterLatestIsEmpty(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := Interval(flipHistory(t0), t0.Add(48*time.Hour))
	assert.Zero(t, s.Revenue)
	assert.Zero(t, s.Expense)
	assert.Zero(t, s.Profit)
	assert.Zero(t, s.Quantity)
	assert.False(t, s.HasAvgBuy)
	assert.False(t, s.HasAvgSell)
	assert.False(t, s.HasROI)
}

func TestIntervalBoundaryInclusive(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Interval start exactly on the buy keeps both trades.
	s := Interval(flipHistory(t0), t0)
	assert.Equal(t, int64(1000), s.Expense)
	assert.Equal(t, int64(1200), s.Revenue)

	// One second later the buy falls out, the sell remains.
	s = Interval(flipHistory(t0), t0.Add(time.Second))
	assert.Zero(t, s.Expense)
	assert.Equal(t, int64(1200), s.Revenue)
	assert.False(t, s.HasROI, "ROI undefined with zero expense")
	assert.False(t, s.HasAvgBuy)
	assert.True(t, s.HasAvgSell)
}

func TestIntervalSellOnlyHistory(t *testing.T) {
	t.Parallel()

	t0 := time.Now()
	history := []exchange.Trade{tr(false, 120, 10, t0)}

	assert.Empty(t, Flips(history))

	s := Interval(history, time.Time{})
	assert.Equal(t, int64(1200), s.Revenue)
	assert.Zero(t, s.Expense)
	assert.False(t, s.HasROI)
	assert.False(t, s.HasAvgBuy, "no buys, no buy average")
	assert.True(t, s.HasAvgSell)
	assert.InDelta(t, 120, s.AvgSellPrice, 1e-9)
}

func TestIntervalBuyOnlyHistory(t *testing.T) {
	t.Parallel()

	t0 := time.Now()
	history := []exchange.Trade{tr(true, 100, 10, t0)}

	s := Interval(history, time.Time{})
	assert.Zero(t, s.Quantity)
	assert.False(t, s.HasAvgBuy, "averages undefined until something sells")
	assert.False(t, s.HasAvgSell)
	assert.True(t, s.HasROI)
	assert.InDelta(t, -100, s.ROIPercent, 1e-9)
}

func TestIntervalPure(t *testing.T) {
	t.Parallel()

	t0 := time.Now()
	history := flipHistory(t0)

	first := Interval(history, time.Time{})
	second := Interval(history, time.Time{})
	assert.Equal(t, first, second)
	assert.Equal(t, flipHistory(t0)[0], history[0], "input history untouched")
}

func TestIntervalHistoryChronological(t *testing.T) {
	t.Parallel()

	t0 := time.Now()
	// Newest-first, as the ledger stores it.
	history := []exchange.Trade{
		tr(false, 120, 1, t0.Add(2*time.Hour)),
		tr(true, 110, 1, t0.Add(time.Hour)),
		tr(true, 100, 1, t0),
	}

	out := IntervalHistory(history, t0.Add(30*time.Minute))
	require.Len(t, out, 2)
	assert.Equal(t, 110, out[0].Price)
	assert.Equal(t, 120, out[1].Price)
}

func TestSpanStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	session := now.Add(-2 * time.Hour)

	tests := []struct {
		span Span
		want time.Time
	}{
		{SpanSession, session},
		{SpanDay, now.Add(-24 * time.Hour)},
		{SpanWeek, now.Add(-7 * 24 * time.Hour)},
		{SpanMonth, now.AddDate(0, -1, 0)},
		{SpanAll, time.Time{}},
	}

	for _, tt := range tests {
		got, err := tt.span.Start(now, session)
		require.NoError(t, err, string(tt.span))
		assert.True(t, got.Equal(tt.want), string(tt.span))
	}

	_, err := Span("fortnight").Start(now, session)
	assert.Error(t, err)
}
