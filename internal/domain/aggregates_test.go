// internal/domain/aggregates_test.go
package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, id string) *Product {
	t.Helper()
	pid, err := NewProductID(id)
	require.NoError(t, err)
	sid, err := NewStyleID("DD1391-100")
	require.NoError(t, err)
	p, err := NewProduct(pid, "Dunk Low Retro", "Nike", sid, "sneakers", "nike-dunk-low-retro",
		nil, nil, time.Time{}, time.Time{})
	require.NoError(t, err)
	return p
}

func newTestVariant(t *testing.T, id, productID, value string, ask *string, snapshotAt time.Time) *Variant {
	t.Helper()
	vid, err := NewVariantID(id)
	require.NoError(t, err)
	pid, err := NewProductID(productID)
	require.NoError(t, err)

	var md *MarketData
	if !snapshotAt.IsZero() {
		var askMoney *Money
		if ask != nil {
			m := mustMoney(t, *ask, "USD")
			askMoney = &m
		}
		snapshot, err := NewMarketData(askMoney, nil, nil, 10, snapshotAt)
		require.NoError(t, err)
		md = &snapshot
	}

	v, err := NewVariant(vid, pid, "Size", value, nil, md, time.Time{}, time.Time{})
	require.NoError(t, err)
	return v
}

func strPtr(s string) *string { return &s }

func TestProductAggregateMembership(t *testing.T) {
	product := newTestProduct(t, "prod-1")
	own := newTestVariant(t, "var-1", "prod-1", "9", nil, time.Time{})
	foreign := newTestVariant(t, "var-2", "prod-2", "10", nil, time.Time{})

	agg, err := NewProductAggregate(product, []*Variant{own})
	require.NoError(t, err)
	require.Equal(t, 1, agg.VariantCount())

	err = agg.AddVariant(foreign)
	require.Error(t, err)
	var de *DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, KindVariantProductMismatch, de.Kind)
	assert.Equal(t, 1, agg.VariantCount(), "rejected addition must not mutate the collection")

	err = agg.AddVariant(newTestVariant(t, "var-1", "prod-1", "9", nil, time.Time{}))
	require.Error(t, err, "duplicate variant ID rejected")
	assert.Equal(t, 1, agg.VariantCount())

	// Construction applies the same check as AddVariant.
	_, err = NewProductAggregate(product, []*Variant{foreign})
	assert.Error(t, err)
}

func TestProductAggregateFindVariantByValue(t *testing.T) {
	product := newTestProduct(t, "prod-1")
	agg, err := NewProductAggregate(product, []*Variant{
		newTestVariant(t, "var-1", "prod-1", "9", nil, time.Time{}),
		newTestVariant(t, "var-2", "prod-1", "9.5", nil, time.Time{}),
	})
	require.NoError(t, err)

	v, ok := agg.FindVariantByValue("9.5")
	require.True(t, ok)
	assert.Equal(t, "var-2", v.ID().Value())

	_, ok = agg.FindVariantByValue("13")
	assert.False(t, ok, "miss returns ok=false, no error")
}

func TestLowestAskAcrossVariants(t *testing.T) {
	snapshotAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	product := newTestProduct(t, "prod-1")
	agg, err := NewProductAggregate(product, []*Variant{
		newTestVariant(t, "var-1", "prod-1", "9", strPtr("120.00"), snapshotAt),
		newTestVariant(t, "var-2", "prod-1", "9.5", strPtr("95.50"), snapshotAt),
		newTestVariant(t, "var-3", "prod-1", "10", nil, snapshotAt), // snapshot without an ask
		newTestVariant(t, "var-4", "prod-1", "10.5", nil, time.Time{}), // no snapshot at all
	})
	require.NoError(t, err)

	lowest, ok := agg.LowestAskAcrossVariants()
	require.True(t, ok)
	assert.Equal(t, "95.5", lowest.Amount().String())

	// All-none case.
	empty, err := NewProductAggregate(newTestProduct(t, "prod-9"), []*Variant{
		newTestVariant(t, "var-9", "prod-9", "9", nil, time.Time{}),
	})
	require.NoError(t, err)
	_, ok = empty.LowestAskAcrossVariants()
	assert.False(t, ok)
}

func TestLowestAskTieKeepsInsertionOrder(t *testing.T) {
	snapshotAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	product := newTestProduct(t, "prod-1")
	first := newTestVariant(t, "var-1", "prod-1", "9", strPtr("100.00"), snapshotAt)
	second := newTestVariant(t, "var-2", "prod-1", "9.5", strPtr("100.00"), snapshotAt)
	agg, err := NewProductAggregate(product, []*Variant{first, second})
	require.NoError(t, err)

	lowest, ok := agg.LowestAskAcrossVariants()
	require.True(t, ok)
	expected, _ := first.LowestAsk()
	assert.True(t, lowest.Equals(expected))
}

func TestVariantsWithStaleMarketData(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := FixedClock(now)

	product := newTestProduct(t, "prod-1")
	fresh := newTestVariant(t, "var-1", "prod-1", "9", strPtr("100.00"), now.Add(-30*time.Minute))
	stale := newTestVariant(t, "var-2", "prod-1", "9.5", strPtr("100.00"), now.Add(-2*time.Hour))
	missing := newTestVariant(t, "var-3", "prod-1", "10", nil, time.Time{})

	agg, err := NewProductAggregate(product, []*Variant{fresh, stale, missing})
	require.NoError(t, err)

	got := agg.VariantsWithStaleMarketData(time.Hour, clock)
	require.Len(t, got, 2)
	assert.Equal(t, "var-2", got[0].ID().Value())
	assert.Equal(t, "var-3", got[1].ID().Value(), "a variant without a snapshot is always stale")
}

func TestListingAggregateMembership(t *testing.T) {
	vid, err := NewVariantID("var-1")
	require.NoError(t, err)

	agg, err := NewListingAggregate(vid, []*Listing{
		newTestListing(t, "l1", "var-1", ListingStatusActive, "100.00"),
	})
	require.NoError(t, err)

	err = agg.AddListing(newTestListing(t, "l2", "var-2", ListingStatusActive, "100.00"))
	require.Error(t, err)
	var de *DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, KindListingVariantMismatch, de.Kind)
	assert.Equal(t, 1, agg.ListingCount())
}

func TestUpdateAllPrices(t *testing.T) {
	vid, err := NewVariantID("var-1")
	require.NoError(t, err)

	sold := newTestListing(t, "l3", "var-1", ListingStatusActive, "80.00")
	require.NoError(t, sold.MarkAsSold())
	cancelled := newTestListing(t, "l4", "var-1", ListingStatusActive, "90.00")
	require.NoError(t, cancelled.Cancel())

	agg, err := NewListingAggregate(vid, []*Listing{
		newTestListing(t, "l1", "var-1", ListingStatusActive, "100.00"),
		newTestListing(t, "l2", "var-1", ListingStatusActive, "110.00"),
		sold,
		cancelled,
	})
	require.NoError(t, err)

	result := agg.UpdateAllPrices(mustMoney(t, "105.00", "USD"))
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 2, result.Skipped)

	// Terminal listings keep their original prices.
	assert.Equal(t, "80", sold.Price().Amount().String())
	assert.Equal(t, "90", cancelled.Price().Amount().String())

	for _, id := range []string{"l1", "l2"} {
		l, ok := agg.GetListing(id)
		require.True(t, ok)
		assert.Equal(t, "105", l.Price().Amount().String())
	}
}

func TestCancelAllActive(t *testing.T) {
	vid, err := NewVariantID("var-1")
	require.NoError(t, err)

	pending := newTestListing(t, "l3", "var-1", ListingStatusPending, "100.00")
	agg, err := NewListingAggregate(vid, []*Listing{
		newTestListing(t, "l1", "var-1", ListingStatusActive, "100.00"),
		newTestListing(t, "l2", "var-1", ListingStatusActive, "100.00"),
		pending,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, agg.CancelAllActive())
	assert.Empty(t, agg.ActiveListings())
	assert.Equal(t, ListingStatusPending, pending.Status(), "only ACTIVE listings are cancelled")
}

func TestTotalQuantityCountsActiveOnly(t *testing.T) {
	vid, err := NewVariantID("var-1")
	require.NoError(t, err)

	active := newTestListing(t, "l1", "var-1", ListingStatusActive, "100.00")
	require.NoError(t, active.UpdateQuantity(3))
	pending := newTestListing(t, "l2", "var-1", ListingStatusPending, "100.00")
	require.NoError(t, pending.UpdateQuantity(5))
	sold := newTestListing(t, "l3", "var-1", ListingStatusActive, "100.00")
	require.NoError(t, sold.UpdateQuantity(7))
	require.NoError(t, sold.MarkAsSold())

	agg, err := NewListingAggregate(vid, []*Listing{active, pending, sold})
	require.NoError(t, err)

	assert.Equal(t, 3, agg.TotalQuantity())
}
