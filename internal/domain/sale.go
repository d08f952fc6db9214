// internal/domain/sale.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Immutable market records fetched from the marketplace and fed into price
// computation. Unlike entities they carry no lifecycle: a Sale that
// happened never changes.

// Sale is a completed transaction for a product or variant.
type Sale struct {
	amount    Money
	soldAt    time.Time
	subjectID string
	isVariant bool
	size      string
	orderType string
}

// NewSale records a completed transaction. subjectID is a variant ID when
// isVariant is set, otherwise a product ID.
func NewSale(amount Money, soldAt time.Time, subjectID string, isVariant bool, size, orderType string) (Sale, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return Sale{}, newValidationError(KindInvalidIdentifier, "product_id", "sale subject ID is required")
	}
	if soldAt.IsZero() {
		return Sale{}, newValidationError(KindInvalidField, "created_at", "sale timestamp is required")
	}
	return Sale{
		amount:    amount,
		soldAt:    soldAt.UTC(),
		subjectID: subjectID,
		isVariant: isVariant,
		size:      strings.TrimSpace(size),
		orderType: strings.TrimSpace(orderType),
	}, nil
}

func (s Sale) Amount() Money     { return s.amount }
func (s Sale) SoldAt() time.Time { return s.soldAt }
func (s Sale) SubjectID() string { return s.subjectID }
func (s Sale) IsVariant() bool   { return s.isVariant }
func (s Sale) Size() string      { return s.size }
func (s Sale) OrderType() string { return s.orderType }

// Equals compares by subject, amount and timestamp: two sales of the same
// item at the same price and instant are the same record.
func (s Sale) Equals(other Sale) bool {
	return s.subjectID == other.subjectID &&
		s.amount.Equals(other.amount) &&
		s.soldAt.Equal(other.soldAt)
}

func (s Sale) ToRecord() Record {
	return Record{
		"amount":        s.amount.Amount().String(),
		"currency_code": s.amount.CurrencyCode(),
		"created_at":    s.soldAt.Format(time.RFC3339Nano),
		"product_id":    s.subjectID,
		"is_variant":    s.isVariant,
		"size":          s.size,
		"order_type":    s.orderType,
	}
}

// Bid is a bid price level with its depth.
type Bid struct {
	amount           Money
	count            int
	ownCount         int
	subjectID        string
	isVariant        bool
	size             string
	availableForFlex bool
}

func NewBid(amount Money, count, ownCount int, subjectID string, isVariant bool, size string, availableForFlex bool) (Bid, error) {
	if count < 0 || ownCount < 0 {
		return Bid{}, newValidationError(KindInvalidField, "count", "bid counts cannot be negative")
	}
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return Bid{}, newValidationError(KindInvalidIdentifier, "product_id", "bid subject ID is required")
	}
	return Bid{
		amount:           amount,
		count:            count,
		ownCount:         ownCount,
		subjectID:        subjectID,
		isVariant:        isVariant,
		size:             strings.TrimSpace(size),
		availableForFlex: availableForFlex,
	}, nil
}

func (b Bid) Amount() Money          { return b.amount }
func (b Bid) Count() int             { return b.count }
func (b Bid) OwnCount() int          { return b.ownCount }
func (b Bid) SubjectID() string      { return b.subjectID }
func (b Bid) IsVariant() bool        { return b.isVariant }
func (b Bid) Size() string           { return b.size }
func (b Bid) AvailableForFlex() bool { return b.availableForFlex }

func (b Bid) Equals(other Bid) bool {
	return b.subjectID == other.subjectID && b.amount.Equals(other.amount)
}

func (b Bid) ToRecord() Record {
	return Record{
		"amount":             b.amount.Amount().String(),
		"currency_code":      b.amount.CurrencyCode(),
		"count":              b.count,
		"own_count":          b.ownCount,
		"product_id":         b.subjectID,
		"is_variant":         b.isVariant,
		"size":               b.size,
		"available_for_flex": b.availableForFlex,
	}
}

// HistoricalSale is one point in a price time series.
type HistoricalSale struct {
	date      time.Time
	price     decimal.Decimal
	subjectID string
	isVariant bool
}

func NewHistoricalSale(date time.Time, price decimal.Decimal, subjectID string, isVariant bool) (HistoricalSale, error) {
	if date.IsZero() {
		return HistoricalSale{}, newValidationError(KindInvalidField, "date", "data point timestamp is required")
	}
	if price.IsNegative() {
		return HistoricalSale{}, newValidationError(KindInvalidMoney, "price", "price cannot be negative")
	}
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return HistoricalSale{}, newValidationError(KindInvalidIdentifier, "product_id", "data point subject ID is required")
	}
	return HistoricalSale{date: date.UTC(), price: price, subjectID: subjectID, isVariant: isVariant}, nil
}

func (h HistoricalSale) Date() time.Time        { return h.date }
func (h HistoricalSale) Price() decimal.Decimal { return h.price }
func (h HistoricalSale) SubjectID() string      { return h.subjectID }
func (h HistoricalSale) IsVariant() bool        { return h.isVariant }

func (h HistoricalSale) Equals(other HistoricalSale) bool {
	return h.subjectID == other.subjectID && h.date.Equal(other.date)
}

func (h HistoricalSale) ToRecord() Record {
	return Record{
		"date":       h.date.Format(time.RFC3339Nano),
		"price":      h.price.String(),
		"product_id": h.subjectID,
		"is_variant": h.isVariant,
	}
}
