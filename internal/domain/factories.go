// internal/domain/factories.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is the untyped shape entities serialize to and factories build
// from: string keys over primitives and nested Records. Both construction
// paths (marketplace API payloads and persisted records) funnel through
// the same entity constructors, so neither can skip validation. Missing or
// malformed required fields fail with a MappingError naming the field;
// factories never substitute defaults for required fields.
type Record map[string]interface{}

// Product

// ProductFromStockXAPI builds a Product from a mapped marketplace payload.
// retail_price arrives as a bare number in the marketplace's response and
// defaults to USD, matching the upstream API contract.
func ProductFromStockXAPI(payload Record) (*Product, error) {
	rawID, err := stringField(payload, "product_id")
	if err != nil {
		return nil, err
	}
	id, err := NewProductID(rawID)
	if err != nil {
		return nil, asMappingError("product_id", err)
	}
	title, err := stringField(payload, "title")
	if err != nil {
		return nil, err
	}
	brand, err := stringField(payload, "brand")
	if err != nil {
		return nil, err
	}
	rawStyle, err := stringField(payload, "style_id")
	if err != nil {
		return nil, err
	}
	styleID, err := NewStyleID(rawStyle)
	if err != nil {
		return nil, asMappingError("style_id", err)
	}

	retailPrice, err := optionalMoneyField(payload, "retail_price", "USD")
	if err != nil {
		return nil, err
	}
	releaseDate, err := optionalTimeField(payload, "release_date")
	if err != nil {
		return nil, err
	}
	createdAt, updatedAt, err := timestamps(payload)
	if err != nil {
		return nil, err
	}

	product, err := NewProduct(id, title, brand, styleID,
		optionalString(payload, "product_type"), optionalString(payload, "url_key"),
		retailPrice, releaseDate, createdAt, updatedAt)
	if err != nil {
		return nil, asMappingError("product", err)
	}
	return product, nil
}

// ProductFromRecord rebuilds a Product from the shape ToRecord produced.
func ProductFromRecord(record Record) (*Product, error) {
	return ProductFromStockXAPI(record)
}

// Variant

func VariantFromStockXAPI(payload Record) (*Variant, error) {
	rawVariantID, err := stringField(payload, "variant_id")
	if err != nil {
		return nil, err
	}
	variantID, err := NewVariantID(rawVariantID)
	if err != nil {
		return nil, asMappingError("variant_id", err)
	}
	rawProductID, err := stringField(payload, "product_id")
	if err != nil {
		return nil, err
	}
	productID, err := NewProductID(rawProductID)
	if err != nil {
		return nil, asMappingError("product_id", err)
	}
	name, err := stringField(payload, "variant_name")
	if err != nil {
		return nil, err
	}
	value, err := stringField(payload, "variant_value")
	if err != nil {
		return nil, err
	}

	var upc *UPC
	if raw := optionalString(payload, "upc"); raw != "" {
		code, err := NewUPC(raw)
		if err != nil {
			return nil, asMappingError("upc", err)
		}
		upc = &code
	}

	var marketData *MarketData
	if raw, ok := payload["market_data"]; ok && raw != nil {
		nested, ok := raw.(Record)
		if !ok {
			if m, isMap := raw.(map[string]interface{}); isMap {
				nested = Record(m)
			} else {
				return nil, newMappingError("market_data", "expected a nested object")
			}
		}
		md, err := MarketDataFromStockXAPI(nested)
		if err != nil {
			return nil, err
		}
		marketData = &md
	}

	createdAt, updatedAt, err := timestamps(payload)
	if err != nil {
		return nil, err
	}

	variant, err := NewVariant(variantID, productID, name, value, upc, marketData, createdAt, updatedAt)
	if err != nil {
		return nil, asMappingError("variant", err)
	}
	return variant, nil
}

func VariantFromRecord(record Record) (*Variant, error) {
	return VariantFromStockXAPI(record)
}

// Listing

func ListingFromStockXAPI(payload Record) (*Listing, error) {
	listingID, err := stringField(payload, "listing_id")
	if err != nil {
		return nil, err
	}
	rawVariantID, err := stringField(payload, "variant_id")
	if err != nil {
		return nil, err
	}
	variantID, err := NewVariantID(rawVariantID)
	if err != nil {
		return nil, asMappingError("variant_id", err)
	}

	var productID *ProductID
	if raw := optionalString(payload, "product_id"); raw != "" {
		pid, err := NewProductID(raw)
		if err != nil {
			return nil, asMappingError("product_id", err)
		}
		productID = &pid
	}

	priceField := "price"
	if _, ok := payload["price"]; !ok {
		// Marketplace payloads call the listing price "amount".
		priceField = "amount"
	}
	price, err := optionalMoneyField(payload, priceField, optionalStringDefault(payload, "currency_code", "USD"))
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, newMappingError(priceField, "required field is missing")
	}

	rawStatus, err := stringField(payload, "status")
	if err != nil {
		return nil, err
	}
	// Fail closed on unknown statuses: an unrecognized lifecycle state from
	// the marketplace must not be silently coerced to ACTIVE.
	status, err := ParseListingStatus(rawStatus)
	if err != nil {
		return nil, asMappingError("status", err)
	}

	inventoryType := InventoryTypeStandard
	if raw := optionalString(payload, "inventory_type"); raw != "" {
		inventoryType, err = ParseInventoryType(raw)
		if err != nil {
			return nil, asMappingError("inventory_type", err)
		}
	}

	quantity := 1
	if raw, ok := payload["quantity"]; ok {
		quantity, err = intValue("quantity", raw)
		if err != nil {
			return nil, err
		}
	}

	expiresAt, err := optionalTimeField(payload, "expires_at")
	if err != nil {
		return nil, err
	}
	createdAt, updatedAt, err := timestamps(payload)
	if err != nil {
		return nil, err
	}

	listing, err := NewListing(listingID, variantID, productID, *price, status, inventoryType,
		quantity, optionalString(payload, "ask_id"), expiresAt, createdAt, updatedAt)
	if err != nil {
		return nil, asMappingError("listing", err)
	}
	return listing, nil
}

func ListingFromRecord(record Record) (*Listing, error) {
	return ListingFromStockXAPI(record)
}

// MarketData

func MarketDataFromStockXAPI(payload Record) (MarketData, error) {
	currency := optionalStringDefault(payload, "currency_code", "USD")

	lowestAsk, err := optionalMoneyField(payload, "lowest_ask", currency)
	if err != nil {
		return MarketData{}, err
	}
	highestBid, err := optionalMoneyField(payload, "highest_bid", currency)
	if err != nil {
		return MarketData{}, err
	}
	lastSale, err := optionalMoneyField(payload, "last_sale", currency)
	if err != nil {
		return MarketData{}, err
	}

	sampleCount := 0
	if raw, ok := payload["sample_count"]; ok {
		sampleCount, err = intValue("sample_count", raw)
		if err != nil {
			return MarketData{}, err
		}
	}

	snapshotAt, err := optionalTimeField(payload, "snapshot_at")
	if err != nil {
		return MarketData{}, err
	}
	if snapshotAt == nil {
		return MarketData{}, newMappingError("snapshot_at", "required field is missing")
	}

	md, err := NewMarketData(lowestAsk, highestBid, lastSale, sampleCount, *snapshotAt)
	if err != nil {
		return MarketData{}, asMappingError("market_data", err)
	}
	return md, nil
}

// Field extraction helpers. Every failure names the offending field.

func stringField(r Record, field string) (string, error) {
	raw, ok := r[field]
	if !ok || raw == nil {
		return "", newMappingError(field, "required field is missing")
	}
	s, ok := raw.(string)
	if !ok {
		return "", newMappingError(field, "expected a string, got %T", raw)
	}
	if strings.TrimSpace(s) == "" {
		return "", newMappingError(field, "required field is empty")
	}
	return s, nil
}

func optionalString(r Record, field string) string {
	if raw, ok := r[field]; ok && raw != nil {
		if s, isString := raw.(string); isString {
			return s
		}
	}
	return ""
}

func optionalStringDefault(r Record, field, fallback string) string {
	if s := optionalString(r, field); s != "" {
		return s
	}
	return fallback
}

func intValue(field string, raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, newMappingError(field, "expected an integer, got %v", v)
		}
		return int(v), nil
	default:
		return 0, newMappingError(field, "expected an integer, got %T", raw)
	}
}

// optionalMoneyField accepts either the serialized form
// {"amount": "199.99", "currency_code": "USD"} or a bare numeric/string
// amount in the given default currency (the marketplace API's shape).
func optionalMoneyField(r Record, field, defaultCurrency string) (*Money, error) {
	raw, ok := r[field]
	if !ok || raw == nil {
		return nil, nil
	}

	var (
		amount   decimal.Decimal
		currency = defaultCurrency
		err      error
	)
	switch v := raw.(type) {
	case map[string]interface{}:
		nested := Record(v)
		amountStr, ferr := stringField(nested, "amount")
		if ferr != nil {
			return nil, newMappingError(field, "money object is missing amount")
		}
		amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, newMappingError(field, "not a decimal amount: %q", amountStr)
		}
		currency = optionalStringDefault(nested, "currency_code", defaultCurrency)
	case Record:
		return optionalMoneyField(Record{field: map[string]interface{}(v)}, field, defaultCurrency)
	case string:
		amount, err = decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, newMappingError(field, "not a decimal amount: %q", v)
		}
	case float64:
		amount = decimal.NewFromFloat(v)
	case int:
		amount = decimal.NewFromInt(int64(v))
	case int64:
		amount = decimal.NewFromInt(v)
	default:
		return nil, newMappingError(field, "expected a money value, got %T", raw)
	}

	money, err := NewMoney(amount, currency)
	if err != nil {
		return nil, asMappingError(field, err)
	}
	return &money, nil
}

func optionalTimeField(r Record, field string) (*time.Time, error) {
	raw, ok := r[field]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case time.Time:
		t := v.UTC()
		return &t, nil
	case string:
		t, err := parseTimestamp(v)
		if err != nil {
			return nil, newMappingError(field, "not a timestamp: %q", v)
		}
		return &t, nil
	default:
		return nil, newMappingError(field, "expected a timestamp, got %T", raw)
	}
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

func timestamps(r Record) (createdAt, updatedAt time.Time, err error) {
	if t, terr := optionalTimeField(r, "created_at"); terr != nil {
		return time.Time{}, time.Time{}, terr
	} else if t != nil {
		createdAt = *t
	}
	if t, terr := optionalTimeField(r, "updated_at"); terr != nil {
		return time.Time{}, time.Time{}, terr
	} else if t != nil {
		updatedAt = *t
	}
	return createdAt, updatedAt, nil
}

// asMappingError rewraps a validation failure raised below the factory so
// callers of the construction boundary see one error type with the field
// named.
func asMappingError(field string, err error) error {
	if me, ok := err.(*MappingError); ok {
		return me
	}
	if ve, ok := err.(*ValidationError); ok && ve.Field != "" {
		return &MappingError{Field: ve.Field, Message: ve.Message}
	}
	return &MappingError{Field: field, Message: err.Error()}
}
