// internal/domain/aggregates.go
package domain

import "time"

// ProductAggregate is the consistency boundary around one Product and its
// Variants. Members are keyed by VariantID with insertion order preserved;
// every member must reference the root's ProductID. The aggregate owns the
// collection exclusively: accessors hand out the member pointers, never
// the backing map.
type ProductAggregate struct {
	product  *Product
	variants map[VariantID]*Variant
	order    []VariantID
}

// NewProductAggregate validates every supplied variant against the root
// before accepting it. All-or-nothing: one mismatched variant fails the
// whole construction.
func NewProductAggregate(product *Product, variants []*Variant) (*ProductAggregate, error) {
	if product == nil {
		return nil, newValidationError(KindInvalidField, "product", "aggregate root is required")
	}
	agg := &ProductAggregate{
		product:  product,
		variants: make(map[VariantID]*Variant),
	}
	for _, v := range variants {
		if err := agg.AddVariant(v); err != nil {
			return nil, err
		}
	}
	return agg, nil
}

func (a *ProductAggregate) Product() *Product    { return a.product }
func (a *ProductAggregate) ProductID() ProductID { return a.product.ID() }
func (a *ProductAggregate) VariantCount() int    { return len(a.order) }
func (a *ProductAggregate) HasVariants() bool    { return len(a.order) > 0 }

// Variants returns the members in insertion order.
func (a *ProductAggregate) Variants() []*Variant {
	out := make([]*Variant, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.variants[id])
	}
	return out
}

// AddVariant accepts a variant only if it references this aggregate's
// product and is not already a member. No state changes on failure.
func (a *ProductAggregate) AddVariant(v *Variant) error {
	if v == nil {
		return newValidationError(KindInvalidField, "variant", "variant is required")
	}
	if !v.BelongsToProduct(a.product.ID()) {
		return newDomainError(KindVariantProductMismatch,
			"variant %s belongs to product %s, not %s", v.ID(), v.ProductID(), a.product.ID())
	}
	if _, exists := a.variants[v.ID()]; exists {
		return newDomainError(KindDuplicateMember, "variant %s already exists", v.ID())
	}
	a.variants[v.ID()] = v
	a.order = append(a.order, v.ID())
	return nil
}

func (a *ProductAggregate) RemoveVariant(id VariantID) error {
	if _, exists := a.variants[id]; !exists {
		return newDomainError(KindMemberNotFound, "variant %s not found", id)
	}
	delete(a.variants, id)
	for i, vid := range a.order {
		if vid.Equals(id) {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return nil
}

func (a *ProductAggregate) GetVariant(id VariantID) (*Variant, bool) {
	v, ok := a.variants[id]
	return v, ok
}

// FindVariantByValue scans members in insertion order for the first variant
// with the given value (e.g. a size label). Misses return ok=false, not an
// error.
func (a *ProductAggregate) FindVariantByValue(value string) (*Variant, bool) {
	for _, id := range a.order {
		if a.variants[id].Value() == value {
			return a.variants[id], true
		}
	}
	return nil, false
}

func (a *ProductAggregate) FindVariantsByName(name string) []*Variant {
	var out []*Variant
	for _, id := range a.order {
		if a.variants[id].Name() == name {
			out = append(out, a.variants[id])
		}
	}
	return out
}

// VariantsWithStaleMarketData returns the members whose snapshot is older
// than maxAge. The clock is injected so the query is deterministic in tests.
func (a *ProductAggregate) VariantsWithStaleMarketData(maxAge time.Duration, clock Clock) []*Variant {
	now := clock.Now()
	var out []*Variant
	for _, id := range a.order {
		if a.variants[id].IsMarketDataStale(maxAge, now) {
			out = append(out, a.variants[id])
		}
	}
	return out
}

// LowestAskAcrossVariants reduces over member market data, skipping
// variants with no ask. Ties keep the earliest-inserted variant's ask.
func (a *ProductAggregate) LowestAskAcrossVariants() (Money, bool) {
	var lowest Money
	found := false
	for _, id := range a.order {
		ask, ok := a.variants[id].LowestAsk()
		if !ok {
			continue
		}
		if !found {
			lowest, found = ask, true
			continue
		}
		if less, err := ask.LessThan(lowest); err == nil && less {
			lowest = ask
		}
	}
	return lowest, found
}

func (a *ProductAggregate) HighestBidAcrossVariants() (Money, bool) {
	var highest Money
	found := false
	for _, id := range a.order {
		bid, ok := a.variants[id].HighestBid()
		if !ok {
			continue
		}
		if !found {
			highest, found = bid, true
			continue
		}
		if greater, err := bid.GreaterThan(highest); err == nil && greater {
			highest = bid
		}
	}
	return highest, found
}

func (a *ProductAggregate) ToRecord() Record {
	variants := make([]Record, 0, len(a.order))
	for _, id := range a.order {
		variants = append(variants, a.variants[id].ToRecord())
	}
	return Record{
		"product":  a.product.ToRecord(),
		"variants": variants,
	}
}

// BatchPriceResult reports a best-effort bulk price update: how many
// listings changed and how many were skipped because they were no longer
// modifiable (or priced in another currency).
type BatchPriceResult struct {
	Updated int
	Skipped int
}

// ListingAggregate groups all listings for one variant. The root is the
// VariantID itself; no listing outranks its siblings.
type ListingAggregate struct {
	variantID VariantID
	listings  map[string]*Listing
	order     []string
}

func NewListingAggregate(variantID VariantID, listings []*Listing) (*ListingAggregate, error) {
	if variantID.IsZero() {
		return nil, newValidationError(KindInvalidIdentifier, "variant_id", "aggregate root variant ID is required")
	}
	agg := &ListingAggregate{
		variantID: variantID,
		listings:  make(map[string]*Listing),
	}
	for _, l := range listings {
		if err := agg.AddListing(l); err != nil {
			return nil, err
		}
	}
	return agg, nil
}

func (a *ListingAggregate) VariantID() VariantID { return a.variantID }
func (a *ListingAggregate) ListingCount() int    { return len(a.order) }

func (a *ListingAggregate) Listings() []*Listing {
	out := make([]*Listing, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.listings[id])
	}
	return out
}

func (a *ListingAggregate) AddListing(l *Listing) error {
	if l == nil {
		return newValidationError(KindInvalidField, "listing", "listing is required")
	}
	if !l.BelongsToVariant(a.variantID) {
		return newDomainError(KindListingVariantMismatch,
			"listing %s belongs to variant %s, not %s", l.ID(), l.VariantID(), a.variantID)
	}
	if _, exists := a.listings[l.ID()]; exists {
		return newDomainError(KindDuplicateMember, "listing %s already exists", l.ID())
	}
	a.listings[l.ID()] = l
	a.order = append(a.order, l.ID())
	return nil
}

func (a *ListingAggregate) RemoveListing(id string) error {
	if _, exists := a.listings[id]; !exists {
		return newDomainError(KindMemberNotFound, "listing %s not found", id)
	}
	delete(a.listings, id)
	for i, lid := range a.order {
		if lid == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return nil
}

func (a *ListingAggregate) GetListing(id string) (*Listing, bool) {
	l, ok := a.listings[id]
	return l, ok
}

func (a *ListingAggregate) ActiveListings() []*Listing {
	var out []*Listing
	for _, id := range a.order {
		if a.listings[id].IsActive() {
			out = append(out, a.listings[id])
		}
	}
	return out
}

func (a *ListingAggregate) SoldListings() []*Listing {
	var out []*Listing
	for _, id := range a.order {
		if a.listings[id].IsSold() {
			out = append(out, a.listings[id])
		}
	}
	return out
}

// CancelAllActive transitions every ACTIVE member to CANCELLED and returns
// how many changed.
func (a *ListingAggregate) CancelAllActive() int {
	count := 0
	for _, id := range a.order {
		l := a.listings[id]
		if l.IsActive() {
			if err := l.Cancel(); err == nil {
				count++
			}
		}
	}
	return count
}

// UpdateAllPrices applies the new price to every modifiable member.
// Terminal listings and currency mismatches are skipped and counted, not
// failed, so the caller can tell a full success from a partial one.
func (a *ListingAggregate) UpdateAllPrices(newPrice Money) BatchPriceResult {
	var result BatchPriceResult
	for _, id := range a.order {
		l := a.listings[id]
		if !l.IsModifiable() {
			result.Skipped++
			continue
		}
		if err := l.UpdatePrice(newPrice); err != nil {
			result.Skipped++
			continue
		}
		result.Updated++
	}
	return result
}

// TotalQuantity sums quantity over ACTIVE listings only. Pending and
// terminal listings are excluded: the total answers "how many units are on
// the market right now".
func (a *ListingAggregate) TotalQuantity() int {
	total := 0
	for _, id := range a.order {
		if a.listings[id].IsActive() {
			total += a.listings[id].Quantity()
		}
	}
	return total
}
