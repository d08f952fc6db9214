// internal/services/convert.go
package services

import (
	"github.com/shopspring/decimal"

	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/models"
)

// Conversions between persistence rows and domain entities. Hydration goes
// through the domain factories so stored rows face the same validation as
// marketplace payloads.

func productToModel(p *domain.Product) *models.Product {
	row := &models.Product{
		ProductID:   p.ID().Value(),
		Title:       p.Title(),
		Brand:       p.Brand(),
		StyleID:     p.StyleID().Value(),
		ProductType: p.ProductType(),
		URLKey:      p.URLKey(),
		Currency:    "USD",
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
	if price, ok := p.RetailPrice(); ok {
		amount := price.Amount()
		row.RetailPrice = &amount
		row.Currency = price.CurrencyCode()
	}
	if release, ok := p.ReleaseDate(); ok {
		row.ReleaseDate = &release
	}
	return row
}

func productFromModel(row *models.Product) (*domain.Product, error) {
	record := domain.Record{
		"product_id":   row.ProductID,
		"title":        row.Title,
		"brand":        row.Brand,
		"style_id":     row.StyleID,
		"product_type": row.ProductType,
		"url_key":      row.URLKey,
		"created_at":   row.CreatedAt,
		"updated_at":   row.UpdatedAt,
	}
	if row.RetailPrice != nil {
		record["retail_price"] = domain.Record{
			"amount":        row.RetailPrice.String(),
			"currency_code": row.Currency,
		}
	}
	if row.ReleaseDate != nil {
		record["release_date"] = *row.ReleaseDate
	}
	return domain.ProductFromRecord(record)
}

func variantToModel(v *domain.Variant) *models.Variant {
	row := &models.Variant{
		VariantID:    v.ID().Value(),
		ProductID:    v.ProductID().Value(),
		VariantName:  v.Name(),
		VariantValue: v.Value(),
		CreatedAt:    v.CreatedAt(),
		UpdatedAt:    v.UpdatedAt(),
	}
	if upc, ok := v.UPC(); ok {
		value := upc.Value()
		row.UPC = &value
	}
	return row
}

func variantFromModel(row *models.Variant, snapshot *models.MarketDataSnapshot) (*domain.Variant, error) {
	record := domain.Record{
		"variant_id":    row.VariantID,
		"product_id":    row.ProductID,
		"variant_name":  row.VariantName,
		"variant_value": row.VariantValue,
		"created_at":    row.CreatedAt,
		"updated_at":    row.UpdatedAt,
	}
	if row.UPC != nil {
		record["upc"] = *row.UPC
	}
	if snapshot != nil {
		record["market_data"] = marketDataRecord(snapshot)
	}
	return domain.VariantFromRecord(record)
}

func marketDataRecord(snapshot *models.MarketDataSnapshot) domain.Record {
	record := domain.Record{
		"currency_code": snapshot.Currency,
		"sample_count":  snapshot.SampleCount,
		"snapshot_at":   snapshot.SnapshotAt,
	}
	if snapshot.LowestAsk != nil {
		record["lowest_ask"] = moneyRecord(*snapshot.LowestAsk, snapshot.Currency)
	}
	if snapshot.HighestBid != nil {
		record["highest_bid"] = moneyRecord(*snapshot.HighestBid, snapshot.Currency)
	}
	if snapshot.LastSale != nil {
		record["last_sale"] = moneyRecord(*snapshot.LastSale, snapshot.Currency)
	}
	return record
}

func moneyRecord(amount decimal.Decimal, currency string) domain.Record {
	return domain.Record{"amount": amount.String(), "currency_code": currency}
}

func snapshotFromMarketData(variantID string, md domain.MarketData) *models.MarketDataSnapshot {
	row := &models.MarketDataSnapshot{
		VariantID:   variantID,
		Currency:    "USD",
		SampleCount: md.SampleCount(),
		SnapshotAt:  md.SnapshotAt(),
	}
	if ask, ok := md.LowestAsk(); ok {
		amount := ask.Amount()
		row.LowestAsk = &amount
		row.Currency = ask.CurrencyCode()
	}
	if bid, ok := md.HighestBid(); ok {
		amount := bid.Amount()
		row.HighestBid = &amount
		row.Currency = bid.CurrencyCode()
	}
	if sale, ok := md.LastSale(); ok {
		amount := sale.Amount()
		row.LastSale = &amount
		row.Currency = sale.CurrencyCode()
	}
	return row
}

func listingToModel(l *domain.Listing) *models.Listing {
	row := &models.Listing{
		ListingID:     l.ID(),
		VariantID:     l.VariantID().Value(),
		Price:         l.Price().Amount(),
		Currency:      l.Price().CurrencyCode(),
		Status:        models.ListingStatus(l.Status()),
		InventoryType: models.InventoryType(l.InventoryType()),
		Quantity:      l.Quantity(),
		AskID:         l.AskID(),
		CreatedAt:     l.CreatedAt(),
		UpdatedAt:     l.UpdatedAt(),
	}
	if pid, ok := l.ProductID(); ok {
		value := pid.Value()
		row.ProductID = &value
	}
	if expires, ok := l.ExpiresAt(); ok {
		row.ExpiresAt = &expires
	}
	return row
}

func listingFromModel(row *models.Listing) (*domain.Listing, error) {
	record := domain.Record{
		"listing_id":    row.ListingID,
		"variant_id":    row.VariantID,
		"price":         domain.Record{"amount": row.Price.String(), "currency_code": row.Currency},
		"status":        string(row.Status),
		"quantity":      row.Quantity,
		"ask_id":        row.AskID,
		"created_at":    row.CreatedAt,
		"updated_at":    row.UpdatedAt,
		"currency_code": row.Currency,
	}
	if row.InventoryType != "" {
		record["inventory_type"] = string(row.InventoryType)
	}
	if row.ProductID != nil {
		record["product_id"] = *row.ProductID
	}
	if row.ExpiresAt != nil {
		record["expires_at"] = *row.ExpiresAt
	}
	return domain.ListingFromRecord(record)
}
