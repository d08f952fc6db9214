// internal/services/convert_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/models"
)

func TestProductModelRoundTrip(t *testing.T) {
	pid, err := domain.NewProductID("prod-1")
	require.NoError(t, err)
	sid, err := domain.NewStyleID("DD1391-100")
	require.NoError(t, err)
	retail, err := domain.NewMoneyFromString("199.99", "USD")
	require.NoError(t, err)
	release := time.Date(2021, 1, 14, 0, 0, 0, 0, time.UTC)

	original, err := domain.NewProduct(pid, "Dunk Low Retro", "Nike", sid,
		"sneakers", "nike-dunk-low-retro", &retail, &release, time.Time{}, time.Time{})
	require.NoError(t, err)

	restored, err := productFromModel(productToModel(original))
	require.NoError(t, err)

	assert.True(t, original.Equals(restored))
	assert.Equal(t, original.Title(), restored.Title())

	price, ok := restored.RetailPrice()
	require.True(t, ok)
	assert.Equal(t, "199.99", price.Amount().String(), "decimal precision survives the database shape")
}

func TestListingModelRoundTrip(t *testing.T) {
	vid, err := domain.NewVariantID("var-1")
	require.NoError(t, err)
	pid, err := domain.NewProductID("prod-1")
	require.NoError(t, err)
	price, err := domain.NewMoneyFromString("249.99", "USD")
	require.NoError(t, err)
	expires := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	original, err := domain.NewListing("l1", vid, &pid, price,
		domain.ListingStatusActive, domain.InventoryTypeFlex, 3, "ask-77", &expires,
		time.Time{}, time.Time{})
	require.NoError(t, err)

	restored, err := listingFromModel(listingToModel(original))
	require.NoError(t, err)

	assert.True(t, original.Equals(restored))
	assert.Equal(t, domain.ListingStatusActive, restored.Status())
	assert.Equal(t, domain.InventoryTypeFlex, restored.InventoryType())
	assert.Equal(t, "249.99", restored.Price().Amount().String())
	assert.Equal(t, 3, restored.Quantity())
}

func TestListingModelRejectsCorruptRow(t *testing.T) {
	row := &models.Listing{
		ListingID: "l1",
		VariantID: "var-1",
		Status:    "SHIPPED", // not a lifecycle state
	}
	_, err := listingFromModel(row)
	require.Error(t, err, "stored rows face the same validation as API payloads")
}

func TestVariantModelRoundTripWithSnapshot(t *testing.T) {
	vid, err := domain.NewVariantID("var-1")
	require.NoError(t, err)
	pid, err := domain.NewProductID("prod-1")
	require.NoError(t, err)
	upc, err := domain.NewUPC("036000291452")
	require.NoError(t, err)

	ask, err := domain.NewMoneyFromString("120.00", "USD")
	require.NoError(t, err)
	md, err := domain.NewMarketData(&ask, nil, nil, 5, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	original, err := domain.NewVariant(vid, pid, "Size", "9.5", &upc, &md, time.Time{}, time.Time{})
	require.NoError(t, err)

	snapshot := snapshotFromMarketData("var-1", md)
	restored, err := variantFromModel(variantToModel(original), snapshot)
	require.NoError(t, err)

	assert.True(t, original.Equals(restored))

	gotUPC, ok := restored.UPC()
	require.True(t, ok)
	assert.True(t, upc.Equals(gotUPC))

	gotMD, ok := restored.MarketData()
	require.True(t, ok)
	gotAsk, ok := gotMD.LowestAsk()
	require.True(t, ok)
	assert.Equal(t, "120", gotAsk.Amount().String())
	_, ok = gotMD.HighestBid()
	assert.False(t, ok, "absent sides stay absent through persistence")
}
