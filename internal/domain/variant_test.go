// internal/domain/variant_test.go
package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantRefreshMarketDataIsWholesale(t *testing.T) {
	v := newTestVariant(t, "var-1", "prod-1", "9.5", strPtr("120.00"), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	// New snapshot has a bid but no ask. After the refresh the old ask must
	// be gone; no field survives from the previous snapshot.
	bid := mustMoney(t, "90.00", "USD")
	replacement, err := NewMarketData(nil, &bid, nil, 5, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	v.RefreshMarketData(replacement)

	_, ok := v.LowestAsk()
	assert.False(t, ok, "stale ask must not leak into the new snapshot")
	gotBid, ok := v.HighestBid()
	require.True(t, ok)
	assert.Equal(t, "90", gotBid.Amount().String())

	v.ClearMarketData()
	assert.False(t, v.HasMarketData())
}

func TestVariantStaleness(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	fresh := newTestVariant(t, "var-1", "prod-1", "9", strPtr("100.00"), now.Add(-10*time.Minute))
	assert.False(t, fresh.IsMarketDataStale(time.Hour, now))

	stale := newTestVariant(t, "var-2", "prod-1", "9", strPtr("100.00"), now.Add(-61*time.Minute))
	assert.True(t, stale.IsMarketDataStale(time.Hour, now))

	missing := newTestVariant(t, "var-3", "prod-1", "9", nil, time.Time{})
	assert.True(t, missing.IsMarketDataStale(time.Hour, now))
}

func TestVariantBelongsToProduct(t *testing.T) {
	v := newTestVariant(t, "var-1", "prod-1", "9", nil, time.Time{})

	pid, err := NewProductID("prod-1")
	require.NoError(t, err)
	other, err := NewProductID("prod-2")
	require.NoError(t, err)

	assert.True(t, v.BelongsToProduct(pid))
	assert.False(t, v.BelongsToProduct(other))
}

func TestMarketDataSpreadAndMidpoint(t *testing.T) {
	ask := mustMoney(t, "120.00", "USD")
	bid := mustMoney(t, "95.50", "USD")
	snapshotAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	md, err := NewMarketData(&ask, &bid, nil, 10, snapshotAt)
	require.NoError(t, err)

	spread, ok := md.Spread()
	require.True(t, ok)
	assert.Equal(t, "24.5", spread.Amount().String())

	mid, ok := md.Midpoint()
	require.True(t, ok)
	assert.Equal(t, "107.75", mid.String())

	// One-sided book has neither.
	oneSided, err := NewMarketData(&ask, nil, nil, 10, snapshotAt)
	require.NoError(t, err)
	_, ok = oneSided.Spread()
	assert.False(t, ok)
	_, ok = oneSided.Midpoint()
	assert.False(t, ok)

	// Crossed book (bid above ask) yields no spread rather than a negative one.
	crossedBid := mustMoney(t, "130.00", "USD")
	crossed, err := NewMarketData(&ask, &crossedBid, nil, 10, snapshotAt)
	require.NoError(t, err)
	_, ok = crossed.Spread()
	assert.False(t, ok)
}

func TestTimeRange(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	r, err := NewTimeRange(start, end)
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, r.Duration())
	assert.True(t, r.Contains(start))
	assert.True(t, r.Contains(end))
	assert.True(t, r.Contains(start.AddDate(0, 0, 15)))
	assert.False(t, r.Contains(end.Add(time.Second)))

	_, err = NewTimeRange(end, start)
	require.Error(t, err, "end before start rejected")

	same, err := NewTimeRange(start, start)
	require.NoError(t, err, "zero-length range is legal")
	assert.Equal(t, time.Duration(0), same.Duration())
}
