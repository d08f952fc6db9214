// internal/domain/variant.go
package domain

import "time"

// Variant is an entity: a sellable configuration of a product (typically a
// size). It references its owning product by ProductID value only, never a
// pointer back into the aggregate, and holds at most one MarketData
// snapshot, replaced wholesale on refresh.
type Variant struct {
	id         VariantID
	productID  ProductID
	name       string
	value      string
	upc        *UPC
	marketData *MarketData
	createdAt  time.Time
	updatedAt  time.Time
}

func NewVariant(id VariantID, productID ProductID, name, value string, upc *UPC,
	marketData *MarketData, createdAt, updatedAt time.Time) (*Variant, error) {

	if id.IsZero() {
		return nil, newValidationError(KindInvalidIdentifier, "variant_id", "variant ID is required")
	}
	if productID.IsZero() {
		return nil, newValidationError(KindInvalidIdentifier, "product_id", "owning product ID is required")
	}
	name, err := requireText("variant_name", name, 200)
	if err != nil {
		return nil, err
	}
	value, err = requireText("variant_value", value, 100)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	v := &Variant{
		id:        id,
		productID: productID,
		name:      name,
		value:     value,
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
	}
	if upc != nil {
		code := *upc
		v.upc = &code
	}
	if marketData != nil {
		snapshot := *marketData
		v.marketData = &snapshot
	}
	return v, nil
}

func (v *Variant) ID() VariantID         { return v.id }
func (v *Variant) ProductID() ProductID  { return v.productID }
func (v *Variant) Name() string          { return v.name }
func (v *Variant) Value() string         { return v.value }
func (v *Variant) CreatedAt() time.Time  { return v.createdAt }
func (v *Variant) UpdatedAt() time.Time  { return v.updatedAt }
func (v *Variant) HasMarketData() bool   { return v.marketData != nil }

func (v *Variant) UPC() (UPC, bool) {
	if v.upc == nil {
		return UPC{}, false
	}
	return *v.upc, true
}

func (v *Variant) MarketData() (MarketData, bool) {
	if v.marketData == nil {
		return MarketData{}, false
	}
	return *v.marketData, true
}

// RefreshMarketData replaces the snapshot atomically. There is no partial
// update: callers cannot refresh the ask while keeping a stale last sale.
func (v *Variant) RefreshMarketData(data MarketData) {
	snapshot := data
	v.marketData = &snapshot
	v.touch()
}

// ClearMarketData drops the snapshot, e.g. when it is known to be stale.
func (v *Variant) ClearMarketData() {
	v.marketData = nil
	v.touch()
}

func (v *Variant) BelongsToProduct(productID ProductID) bool {
	return v.productID.Equals(productID)
}

// IsMarketDataStale reports whether the snapshot is older than maxAge as of
// now. A variant without a snapshot is always stale.
func (v *Variant) IsMarketDataStale(maxAge time.Duration, now time.Time) bool {
	if v.marketData == nil {
		return true
	}
	return v.marketData.IsStale(maxAge, now)
}

func (v *Variant) LowestAsk() (Money, bool) {
	if v.marketData == nil {
		return Money{}, false
	}
	return v.marketData.LowestAsk()
}

func (v *Variant) HighestBid() (Money, bool) {
	if v.marketData == nil {
		return Money{}, false
	}
	return v.marketData.HighestBid()
}

// Equals is identity-based: same VariantID means same variant.
func (v *Variant) Equals(other *Variant) bool {
	if other == nil {
		return false
	}
	return v.id.Equals(other.id)
}

func (v *Variant) ToRecord() Record {
	record := Record{
		"variant_id":    v.id.Value(),
		"product_id":    v.productID.Value(),
		"variant_name":  v.name,
		"variant_value": v.value,
		"created_at":    v.createdAt.Format(time.RFC3339Nano),
		"updated_at":    v.updatedAt.Format(time.RFC3339Nano),
	}
	if v.upc != nil {
		record["upc"] = v.upc.Value()
	}
	if v.marketData != nil {
		record["market_data"] = v.marketData.toRecord()
	}
	return record
}

func (v *Variant) touch() {
	v.updatedAt = time.Now().UTC()
}
