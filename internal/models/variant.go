// internal/models/variant.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Variant struct {
	VariantID    string         `json:"variant_id" gorm:"size:255;primary_key"`
	ProductID    string         `json:"product_id" gorm:"size:255;not null;index"`
	VariantName  string         `json:"variant_name" gorm:"size:100;not null"`
	VariantValue string         `json:"variant_value" gorm:"size:100;not null"`
	UPC          *string        `json:"upc,omitempty" gorm:"size:14;index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Product   Product              `json:"product,omitempty" gorm:"foreignKey:ProductID;references:ProductID"`
	Listings  []Listing            `json:"listings,omitempty" gorm:"foreignKey:VariantID;references:VariantID"`
	Snapshots []MarketDataSnapshot `json:"snapshots,omitempty" gorm:"foreignKey:VariantID;references:VariantID"`
}

// MarketDataSnapshot is an append-only record of the order book as seen at
// SnapshotAt. The newest row per variant is the variant's current view.
type MarketDataSnapshot struct {
	BaseModel
	VariantID   string           `json:"variant_id" gorm:"size:255;not null;index"`
	LowestAsk   *decimal.Decimal `json:"lowest_ask,omitempty" gorm:"type:decimal(12,2)"`
	HighestBid  *decimal.Decimal `json:"highest_bid,omitempty" gorm:"type:decimal(12,2)"`
	LastSale    *decimal.Decimal `json:"last_sale,omitempty" gorm:"type:decimal(12,2)"`
	Currency    string           `json:"currency" gorm:"size:3;default:'USD'"`
	SampleCount int              `json:"sample_count" gorm:"default:0"`
	SnapshotAt  time.Time        `json:"snapshot_at" gorm:"not null;index"`
}
