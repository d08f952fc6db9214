// internal/domain/listing.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxListingQuantity = 100

// Listing is an entity: an offer to sell one variant at one price. Its
// status follows a strict state machine:
//
//	PENDING -> ACTIVE -> SOLD
//	PENDING|ACTIVE -> CANCELLED
//	PENDING|ACTIVE -> EXPIRED (once the expiration time has passed)
//
// SOLD, CANCELLED and EXPIRED are terminal. Price and quantity can only
// change while IsModifiable(); a sold listing's price never moves again.
type Listing struct {
	id            string
	variantID     VariantID
	productID     *ProductID
	price         Money
	status        ListingStatus
	inventoryType InventoryType
	quantity      int
	askID         string
	expiresAt     *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewListingID generates an identifier for a listing created locally rather
// than synced from the marketplace.
func NewListingID() string {
	return uuid.New().String()
}

func NewListing(id string, variantID VariantID, productID *ProductID, price Money,
	status ListingStatus, inventoryType InventoryType, quantity int, askID string,
	expiresAt *time.Time, createdAt, updatedAt time.Time) (*Listing, error) {

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, newValidationError(KindInvalidIdentifier, "listing_id", "listing ID cannot be empty")
	}
	if variantID.IsZero() {
		return nil, newValidationError(KindInvalidIdentifier, "variant_id", "owning variant ID is required")
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if _, err := ParseListingStatus(string(status)); err != nil {
		return nil, err
	}
	if _, err := ParseInventoryType(string(inventoryType)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	l := &Listing{
		id:            id,
		variantID:     variantID,
		price:         price,
		status:        status,
		inventoryType: inventoryType,
		quantity:      quantity,
		askID:         strings.TrimSpace(askID),
		createdAt:     createdAt.UTC(),
		updatedAt:     updatedAt.UTC(),
	}
	if productID != nil {
		pid := *productID
		l.productID = &pid
	}
	if expiresAt != nil {
		exp := expiresAt.UTC()
		l.expiresAt = &exp
	}
	return l, nil
}

func (l *Listing) ID() string                   { return l.id }
func (l *Listing) VariantID() VariantID         { return l.variantID }
func (l *Listing) Price() Money                 { return l.price }
func (l *Listing) Status() ListingStatus        { return l.status }
func (l *Listing) InventoryType() InventoryType { return l.inventoryType }
func (l *Listing) Quantity() int                { return l.quantity }
func (l *Listing) AskID() string                { return l.askID }
func (l *Listing) CreatedAt() time.Time         { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time         { return l.updatedAt }

func (l *Listing) ProductID() (ProductID, bool) {
	if l.productID == nil {
		return ProductID{}, false
	}
	return *l.productID, true
}

func (l *Listing) ExpiresAt() (time.Time, bool) {
	if l.expiresAt == nil {
		return time.Time{}, false
	}
	return *l.expiresAt, true
}

// State transitions

// Activate moves PENDING -> ACTIVE.
func (l *Listing) Activate() error {
	if l.status != ListingStatusPending {
		return l.transitionError(ListingStatusActive)
	}
	l.status = ListingStatusActive
	l.touch()
	return nil
}

// MarkAsSold moves ACTIVE -> SOLD. Terminal.
func (l *Listing) MarkAsSold() error {
	if l.status != ListingStatusActive {
		return l.transitionError(ListingStatusSold)
	}
	l.status = ListingStatusSold
	l.touch()
	return nil
}

// Cancel moves PENDING|ACTIVE -> CANCELLED. Terminal.
func (l *Listing) Cancel() error {
	if l.status != ListingStatusPending && l.status != ListingStatusActive {
		return l.transitionError(ListingStatusCancelled)
	}
	l.status = ListingStatusCancelled
	l.touch()
	return nil
}

// Expire moves PENDING|ACTIVE -> EXPIRED, but only once the listing's
// expiration time has passed as of the caller-supplied now. Listings with
// no expiration can be expired unconditionally (the marketplace is
// authoritative about its own asks).
func (l *Listing) Expire(now time.Time) error {
	if l.status != ListingStatusPending && l.status != ListingStatusActive {
		return l.transitionError(ListingStatusExpired)
	}
	if l.expiresAt != nil && now.UTC().Before(*l.expiresAt) {
		return newDomainError(KindInvalidStateTransition,
			"listing %s expiration time has not passed", l.id)
	}
	l.status = ListingStatusExpired
	l.touch()
	return nil
}

// Mutations gated on modifiability

// UpdatePrice changes the asking price. The currency must match the
// listing's existing currency; terminal listings are rejected.
func (l *Listing) UpdatePrice(newPrice Money) error {
	if !l.IsModifiable() {
		return newDomainError(KindListingNotModifiable,
			"cannot update price of a %s listing", l.status)
	}
	if newPrice.CurrencyCode() != l.price.CurrencyCode() {
		return newDomainError(KindCurrencyMismatch,
			"listing is in %s, new price is in %s", l.price.CurrencyCode(), newPrice.CurrencyCode())
	}
	l.price = newPrice
	l.touch()
	return nil
}

func (l *Listing) UpdateQuantity(newQuantity int) error {
	if !l.IsModifiable() {
		return newDomainError(KindListingNotModifiable,
			"cannot update quantity of a %s listing", l.status)
	}
	if err := validateQuantity(newQuantity); err != nil {
		return err
	}
	l.quantity = newQuantity
	l.touch()
	return nil
}

// DecrementQuantity reduces the quantity by n. Going below zero fails
// rather than clamping.
func (l *Listing) DecrementQuantity(n int) error {
	if !l.IsModifiable() {
		return newDomainError(KindListingNotModifiable,
			"cannot update quantity of a %s listing", l.status)
	}
	if n < 0 {
		return newValidationError(KindInvalidQuantity, "quantity", "decrement must be non-negative")
	}
	if l.quantity-n < 0 {
		return newValidationError(KindInvalidQuantity, "quantity",
			"cannot decrement %d below zero (have %d)", n, l.quantity)
	}
	l.quantity -= n
	l.touch()
	return nil
}

// Queries

// IsModifiable reports whether price/quantity mutations are still allowed.
// Only PENDING and ACTIVE listings are modifiable.
func (l *Listing) IsModifiable() bool {
	return l.status == ListingStatusPending || l.status == ListingStatusActive
}

func (l *Listing) IsActive() bool    { return l.status == ListingStatusActive }
func (l *Listing) IsSold() bool      { return l.status == ListingStatusSold }
func (l *Listing) IsCancelled() bool { return l.status == ListingStatusCancelled }

// IsExpired reports either the EXPIRED status or a passed expiration time.
func (l *Listing) IsExpired(now time.Time) bool {
	if l.status == ListingStatusExpired {
		return true
	}
	return l.expiresAt != nil && now.UTC().After(*l.expiresAt)
}

func (l *Listing) DaysActive(now time.Time) int {
	return int(now.UTC().Sub(l.createdAt).Hours() / 24)
}

func (l *Listing) BelongsToVariant(variantID VariantID) bool {
	return l.variantID.Equals(variantID)
}

// Equals is identity-based: same listing ID means same listing.
func (l *Listing) Equals(other *Listing) bool {
	if other == nil {
		return false
	}
	return l.id == other.id
}

func (l *Listing) ToRecord() Record {
	record := Record{
		"listing_id":     l.id,
		"variant_id":     l.variantID.Value(),
		"price":          l.price.toRecord(),
		"status":         string(l.status),
		"inventory_type": string(l.inventoryType),
		"quantity":       l.quantity,
		"created_at":     l.createdAt.Format(time.RFC3339Nano),
		"updated_at":     l.updatedAt.Format(time.RFC3339Nano),
	}
	if l.productID != nil {
		record["product_id"] = l.productID.Value()
	}
	if l.askID != "" {
		record["ask_id"] = l.askID
	}
	if l.expiresAt != nil {
		record["expires_at"] = l.expiresAt.Format(time.RFC3339Nano)
	}
	return record
}

func (l *Listing) transitionError(target ListingStatus) error {
	if l.status.IsTerminal() {
		return newDomainError(KindInvalidStateTransition,
			"listing %s is %s (terminal), cannot transition to %s", l.id, l.status, target)
	}
	return newDomainError(KindInvalidStateTransition,
		"listing %s cannot transition from %s to %s", l.id, l.status, target)
}

func (l *Listing) touch() {
	l.updatedAt = time.Now().UTC()
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return newValidationError(KindInvalidQuantity, "quantity", "quantity cannot be negative: %d", quantity)
	}
	if quantity > maxListingQuantity {
		return newValidationError(KindInvalidQuantity, "quantity", "quantity cannot exceed %d: %d", maxListingQuantity, quantity)
	}
	return nil
}
