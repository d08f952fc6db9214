// internal/domain/product.go
package domain

import (
	"strings"
	"time"
)

const maxTitleLength = 500

// Product is an entity: identified by ProductID, mutable only through its
// methods, equal to another Product when the IDs match regardless of field
// values. Every mutator re-validates its input and refreshes UpdatedAt.
type Product struct {
	id          ProductID
	title       string
	brand       string
	styleID     StyleID
	productType string
	urlKey      string
	retailPrice *Money
	releaseDate *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProduct constructs a fully validated Product. Factories and runtime
// callers both go through here; zero createdAt/updatedAt default to now.
func NewProduct(id ProductID, title, brand string, styleID StyleID, productType, urlKey string,
	retailPrice *Money, releaseDate *time.Time, createdAt, updatedAt time.Time) (*Product, error) {

	if id.IsZero() {
		return nil, newValidationError(KindInvalidIdentifier, "product_id", "product ID is required")
	}
	title, err := requireText("title", title, maxTitleLength)
	if err != nil {
		return nil, err
	}
	brand, err = requireText("brand", brand, 100)
	if err != nil {
		return nil, err
	}
	if urlKey != "" {
		urlKey = strings.ToLower(strings.TrimSpace(urlKey))
		if strings.Contains(urlKey, " ") {
			return nil, newValidationError(KindInvalidField, "url_key", "URL key cannot contain spaces")
		}
	}

	now := time.Now().UTC()
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	p := &Product{
		id:          id,
		title:       title,
		brand:       brand,
		styleID:     styleID,
		productType: strings.TrimSpace(productType),
		urlKey:      urlKey,
		createdAt:   createdAt.UTC(),
		updatedAt:   updatedAt.UTC(),
	}
	if retailPrice != nil {
		price := *retailPrice
		p.retailPrice = &price
	}
	if releaseDate != nil {
		date := releaseDate.UTC()
		p.releaseDate = &date
	}
	return p, nil
}

func (p *Product) ID() ProductID       { return p.id }
func (p *Product) Title() string       { return p.title }
func (p *Product) Brand() string       { return p.brand }
func (p *Product) StyleID() StyleID    { return p.styleID }
func (p *Product) ProductType() string { return p.productType }
func (p *Product) URLKey() string      { return p.urlKey }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

func (p *Product) RetailPrice() (Money, bool) {
	if p.retailPrice == nil {
		return Money{}, false
	}
	return *p.retailPrice, true
}

func (p *Product) ReleaseDate() (time.Time, bool) {
	if p.releaseDate == nil {
		return time.Time{}, false
	}
	return *p.releaseDate, true
}

// UpdatePrice sets a new retail price. Zero prices are rejected here even
// though Money itself allows them: a product is never free.
func (p *Product) UpdatePrice(newPrice Money) error {
	if !newPrice.Amount().IsPositive() {
		return newValidationError(KindInvalidMoney, "retail_price", "price must be positive")
	}
	price := newPrice
	p.retailPrice = &price
	p.touch()
	return nil
}

func (p *Product) UpdateTitle(newTitle string) error {
	title, err := requireText("title", newTitle, maxTitleLength)
	if err != nil {
		return err
	}
	p.title = title
	p.touch()
	return nil
}

func (p *Product) UpdateReleaseDate(releaseDate time.Time) {
	date := releaseDate.UTC()
	p.releaseDate = &date
	p.touch()
}

// IsReleased reports whether the product is on the market as of now. A
// missing release date is treated as already released.
func (p *Product) IsReleased(now time.Time) bool {
	if p.releaseDate == nil {
		return true
	}
	return !now.UTC().Before(*p.releaseDate)
}

// DaysSinceRelease returns whole days since release, absent when the
// release date is unknown or still in the future.
func (p *Product) DaysSinceRelease(now time.Time) (int, bool) {
	if p.releaseDate == nil || !p.IsReleased(now) {
		return 0, false
	}
	return int(now.UTC().Sub(*p.releaseDate).Hours() / 24), true
}

// Equals is identity-based: same ProductID means same product.
func (p *Product) Equals(other *Product) bool {
	if other == nil {
		return false
	}
	return p.id.Equals(other.id)
}

// ToRecord serializes exactly the persisted fields; nothing else leaks.
func (p *Product) ToRecord() Record {
	record := Record{
		"product_id":   p.id.Value(),
		"title":        p.title,
		"brand":        p.brand,
		"style_id":     p.styleID.Value(),
		"product_type": p.productType,
		"url_key":      p.urlKey,
		"created_at":   p.createdAt.Format(time.RFC3339Nano),
		"updated_at":   p.updatedAt.Format(time.RFC3339Nano),
	}
	if p.retailPrice != nil {
		record["retail_price"] = p.retailPrice.toRecord()
	}
	if p.releaseDate != nil {
		record["release_date"] = p.releaseDate.Format(time.RFC3339Nano)
	}
	return record
}

func (p *Product) touch() {
	p.updatedAt = time.Now().UTC()
}

func requireText(field, value string, maxLen int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", newValidationError(KindInvalidField, field, "cannot be empty or whitespace")
	}
	if len(v) > maxLen {
		return "", newValidationError(KindInvalidField, field, "exceeds %d characters", maxLen)
	}
	return v, nil
}
