package tracker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/flipper/exchange"
)

func writeEvents(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVEventFeed(t *testing.T) {
	t.Parallel()

	path := writeEvents(t, `time,slot,item_id,state,quantity_filled,total_spent
2026-03-01T12:00:00Z,0,560,bought,1,180
2026-03-01T12:01:00Z,1,2,selling,3,15
2026-03-01T12:02:00Z,1,2,sold,10,50
`)

	feed, err := NewCSVEventFeed(path)
	require.NoError(t, err)
	defer feed.Close()

	ev, ok, err := feed.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 560, ev.ItemID)
	assert.Equal(t, exchange.StateBought, ev.State)
	assert.Equal(t, 1, ev.QuantityFilled)
	assert.Equal(t, 180, ev.TotalSpent)

	ev, ok, err = feed.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, exchange.StateSelling, ev.State)

	ev, ok, err = feed.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, exchange.StateSold, ev.State)
	assert.Equal(t, 10, ev.QuantityFilled)

	_, ok, err = feed.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCSVEventFeedNoHeader(t *testing.T) {
	t.Parallel()

	path := writeEvents(t, "2026-03-01T12:00:00Z,0,560,bought,1,180\n")

	feed, err := NewCSVEventFeed(path)
	require.NoError(t, err)
	defer feed.Close()

	ev, ok, err := feed.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 560, ev.ItemID)
}

func TestCSVEventFeedBadRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  string
	}{
		{"bad_time", "noon,0,560,bought,1,180\n"},
		{"bad_state", "2026-03-01T12:00:00Z,0,560,exploded,1,180\n"},
		{"bad_quantity", "2026-03-01T12:00:00Z,0,560,bought,one,180\n"},
		{"short_row", "2026-03-01T12:00:00Z,0,560\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			feed, err := NewCSVEventFeed(writeEvents(t, tt.row))
			require.NoError(t, err)
			defer feed.Close()

			_, _, err = feed.Next()
			assert.Error(t, err)
		})
	}
}
