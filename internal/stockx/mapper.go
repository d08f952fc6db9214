// internal/stockx/mapper.go
package stockx

import (
	"time"

	"github.com/javajoker/repricer-backend/internal/domain"
)

// Mapper reshapes raw marketplace JSON into the flat records the domain
// factories consume. Field renames happen here so the factories only ever
// see one payload shape.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

func (m *Mapper) ProductFromPayload(payload map[string]interface{}) (*domain.Product, error) {
	record := domain.Record{
		"product_id":   firstValue(payload, "productId", "product_id"),
		"title":        firstValue(payload, "title"),
		"brand":        firstValue(payload, "brand"),
		"style_id":     firstValue(payload, "styleId", "style_id"),
		"product_type": firstValue(payload, "productType", "product_type"),
		"url_key":      firstValue(payload, "urlKey", "url_key"),
	}

	// Retail price and release date live under productAttributes.
	if attrs, ok := payload["productAttributes"].(map[string]interface{}); ok {
		record["retail_price"] = attrs["retailPrice"]
		record["release_date"] = attrs["releaseDate"]
	} else {
		record["retail_price"] = firstValue(payload, "retailPrice", "retail_price")
		record["release_date"] = firstValue(payload, "releaseDate", "release_date")
	}

	return domain.ProductFromStockXAPI(pruneNil(record))
}

func (m *Mapper) VariantFromPayload(payload map[string]interface{}) (*domain.Variant, error) {
	record := domain.Record{
		"variant_id":    firstValue(payload, "variantId", "variant_id"),
		"product_id":    firstValue(payload, "productId", "product_id"),
		"variant_name":  firstValue(payload, "variantName", "variant_name"),
		"variant_value": firstValue(payload, "variantValue", "variant_value"),
	}

	if upc := extractUPC(payload); upc != "" {
		record["upc"] = upc
	}

	return domain.VariantFromStockXAPI(pruneNil(record))
}

// MarketDataFromPayload stamps the snapshot with snapshotAt since the
// marketplace response carries no timestamp of its own.
func (m *Mapper) MarketDataFromPayload(payload map[string]interface{}, snapshotAt time.Time) (domain.MarketData, error) {
	record := domain.Record{
		"currency_code": firstValue(payload, "currencyCode", "currency_code"),
		"lowest_ask":    firstValue(payload, "lowestAskAmount", "lowest_ask"),
		"highest_bid":   firstValue(payload, "highestBidAmount", "highest_bid"),
		"last_sale":     firstValue(payload, "lastSaleAmount", "last_sale"),
		"sample_count":  firstValue(payload, "salesLast72Hours", "sample_count"),
		"snapshot_at":   snapshotAt,
	}

	return domain.MarketDataFromStockXAPI(pruneNil(record))
}

func (m *Mapper) ListingFromPayload(payload map[string]interface{}) (*domain.Listing, error) {
	record := domain.Record{
		"listing_id":     firstValue(payload, "listingId", "listing_id"),
		"amount":         firstValue(payload, "amount", "price"),
		"currency_code":  firstValue(payload, "currencyCode", "currency_code"),
		"status":         firstValue(payload, "status"),
		"inventory_type": firstValue(payload, "inventoryType", "inventory_type"),
		"quantity":       firstValue(payload, "quantity"),
	}

	// Variant and product references arrive as nested objects.
	if variant, ok := payload["variant"].(map[string]interface{}); ok {
		record["variant_id"] = firstValue(variant, "variantId", "variant_id")
	} else {
		record["variant_id"] = firstValue(payload, "variantId", "variant_id")
	}
	if product, ok := payload["product"].(map[string]interface{}); ok {
		record["product_id"] = firstValue(product, "productId", "product_id")
	} else {
		record["product_id"] = firstValue(payload, "productId", "product_id")
	}

	if ask, ok := payload["ask"].(map[string]interface{}); ok {
		record["ask_id"] = firstValue(ask, "askId", "ask_id")
		record["expires_at"] = firstValue(ask, "askExpiresAt", "expiresAt", "expires_at")
	}

	return domain.ListingFromStockXAPI(pruneNil(record))
}

// extractUPC walks the gtins array and prefers a UPC entry over an EAN.
func extractUPC(payload map[string]interface{}) string {
	gtins, ok := payload["gtins"].([]interface{})
	if !ok {
		if s, ok := payload["upc"].(string); ok {
			return s
		}
		return ""
	}

	var fallback string
	for _, item := range gtins {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		identifier, _ := entry["identifier"].(string)
		if identifier == "" {
			continue
		}
		gtinType, _ := entry["type"].(string)
		if gtinType == "UPC" {
			return identifier
		}
		if fallback == "" {
			fallback = identifier
		}
	}
	return fallback
}

func firstValue(payload map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := payload[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func pruneNil(record domain.Record) domain.Record {
	for k, v := range record {
		if v == nil {
			delete(record, k)
		}
	}
	return record
}
