// internal/domain/factories_test.go
package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductFromStockXAPI(t *testing.T) {
	payload := Record{
		"product_id":   "prod-1",
		"title":        "Dunk Low Retro",
		"brand":        "Nike",
		"style_id":     "dd1391-100",
		"product_type": "sneakers",
		"url_key":      "nike-dunk-low-retro",
		"retail_price": 110.0, // marketplace sends a bare number, implied USD
		"release_date": "2021-01-14",
	}

	p, err := ProductFromStockXAPI(payload)
	require.NoError(t, err)
	assert.Equal(t, "prod-1", p.ID().Value())
	assert.Equal(t, "DD1391-100", p.StyleID().Value())

	price, ok := p.RetailPrice()
	require.True(t, ok)
	assert.Equal(t, "USD", price.CurrencyCode())
	assert.Equal(t, "110", price.Amount().String())

	release, ok := p.ReleaseDate()
	require.True(t, ok)
	assert.Equal(t, 2021, release.Year())
}

func TestProductFactoryFailsClosed(t *testing.T) {
	base := Record{
		"product_id": "prod-1",
		"title":      "Dunk Low Retro",
		"brand":      "Nike",
		"style_id":   "DD1391-100",
	}

	for _, required := range []string{"product_id", "title", "brand", "style_id"} {
		payload := Record{}
		for k, v := range base {
			payload[k] = v
		}
		delete(payload, required)

		_, err := ProductFromStockXAPI(payload)
		require.Error(t, err, "missing %s", required)
		var me *MappingError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, required, me.Field, "error must name the offending field")
	}
}

func TestListingFactoryRejectsUnknownStatus(t *testing.T) {
	payload := Record{
		"listing_id": "l1",
		"variant_id": "var-1",
		"amount":     150.0,
		"status":     "SHIPPED",
	}

	_, err := ListingFromStockXAPI(payload)
	require.Error(t, err, "unknown status must not be coerced to a default")
	var me *MappingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "status", me.Field)
}

func TestProductRoundTrip(t *testing.T) {
	retail := mustMoney(t, "199.99", "USD")
	release := time.Date(2021, 1, 14, 0, 0, 0, 0, time.UTC)
	pid, err := NewProductID("prod-1")
	require.NoError(t, err)
	sid, err := NewStyleID("DD1391-100")
	require.NoError(t, err)

	original, err := NewProduct(pid, "Dunk Low Retro", "Nike", sid, "sneakers", "nike-dunk-low-retro",
		&retail, &release, time.Time{}, time.Time{})
	require.NoError(t, err)

	restored, err := ProductFromRecord(original.ToRecord())
	require.NoError(t, err)

	assert.True(t, original.Equals(restored))
	assert.Equal(t, original.Title(), restored.Title())
	assert.Equal(t, original.Brand(), restored.Brand())
	assert.True(t, original.StyleID().Equals(restored.StyleID()))

	price, ok := restored.RetailPrice()
	require.True(t, ok)
	assert.Equal(t, "199.99", price.Amount().String(), "decimal precision survives the round trip")

	gotRelease, ok := restored.ReleaseDate()
	require.True(t, ok)
	assert.True(t, release.Equal(gotRelease))
	assert.True(t, original.CreatedAt().Equal(restored.CreatedAt()))
	assert.True(t, original.UpdatedAt().Equal(restored.UpdatedAt()))
}

func TestVariantRoundTrip(t *testing.T) {
	vid, err := NewVariantID("var-1")
	require.NoError(t, err)
	pid, err := NewProductID("prod-1")
	require.NoError(t, err)
	upc, err := NewUPC("036000291452")
	require.NoError(t, err)

	ask := mustMoney(t, "120.00", "USD")
	bid := mustMoney(t, "95.50", "USD")
	md, err := NewMarketData(&ask, &bid, nil, 42, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	original, err := NewVariant(vid, pid, "Size", "9.5", &upc, &md, time.Time{}, time.Time{})
	require.NoError(t, err)

	restored, err := VariantFromRecord(original.ToRecord())
	require.NoError(t, err)

	assert.True(t, original.Equals(restored))
	assert.True(t, restored.BelongsToProduct(pid))

	gotUPC, ok := restored.UPC()
	require.True(t, ok)
	assert.True(t, upc.Equals(gotUPC))

	gotMD, ok := restored.MarketData()
	require.True(t, ok)
	gotAsk, ok := gotMD.LowestAsk()
	require.True(t, ok)
	assert.Equal(t, "120", gotAsk.Amount().String())
	gotBid, ok := gotMD.HighestBid()
	require.True(t, ok)
	assert.Equal(t, "95.5", gotBid.Amount().String())
	assert.Equal(t, 42, gotMD.SampleCount())
	assert.True(t, md.SnapshotAt().Equal(gotMD.SnapshotAt()))
	_, ok = gotMD.LastSale()
	assert.False(t, ok, "absent prices stay absent")
}

func TestListingRoundTrip(t *testing.T) {
	vid, err := NewVariantID("var-1")
	require.NoError(t, err)
	pid, err := NewProductID("prod-1")
	require.NoError(t, err)
	expires := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	original, err := NewListing("l1", vid, &pid, mustMoney(t, "249.99", "USD"),
		ListingStatusActive, InventoryTypeFlex, 3, "ask-77", &expires, time.Time{}, time.Time{})
	require.NoError(t, err)

	restored, err := ListingFromRecord(original.ToRecord())
	require.NoError(t, err)

	assert.True(t, original.Equals(restored))
	assert.Equal(t, ListingStatusActive, restored.Status())
	assert.Equal(t, InventoryTypeFlex, restored.InventoryType())
	assert.Equal(t, 3, restored.Quantity())
	assert.Equal(t, "ask-77", restored.AskID())
	assert.Equal(t, "249.99", restored.Price().Amount().String())

	gotPID, ok := restored.ProductID()
	require.True(t, ok)
	assert.True(t, pid.Equals(gotPID))

	gotExpires, ok := restored.ExpiresAt()
	require.True(t, ok)
	assert.True(t, expires.Equal(gotExpires))
}

func TestMarketDataFromStockXAPI(t *testing.T) {
	md, err := MarketDataFromStockXAPI(Record{
		"currency_code": "USD",
		"lowest_ask":    120.0,
		"highest_bid":   95.5,
		"last_sale":     110.0,
		"sample_count":  7,
		"snapshot_at":   "2024-06-01T12:00:00Z",
	})
	require.NoError(t, err)

	ask, ok := md.LowestAsk()
	require.True(t, ok)
	assert.Equal(t, "120", ask.Amount().String())
	assert.Equal(t, 7, md.SampleCount())

	_, err = MarketDataFromStockXAPI(Record{"lowest_ask": 120.0})
	require.Error(t, err, "snapshot timestamp is required")

	_, err = MarketDataFromStockXAPI(Record{
		"lowest_ask":  Record{"amount": "120.00", "currency_code": "USD"},
		"highest_bid": Record{"amount": "95.50", "currency_code": "EUR"},
		"snapshot_at": "2024-06-01T12:00:00Z",
	})
	require.Error(t, err, "mixed currencies rejected")
}
