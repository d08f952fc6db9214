// internal/models/product.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product rows are keyed by the marketplace product ID rather than a
// surrogate UUID so upserts from the external API stay idempotent.
type Product struct {
	ProductID   string           `json:"product_id" gorm:"size:255;primary_key"`
	Title       string           `json:"title" gorm:"size:500;not null"`
	Brand       string           `json:"brand" gorm:"size:255;not null;index"`
	StyleID     string           `json:"style_id" gorm:"size:255;not null;index"`
	ProductType string           `json:"product_type" gorm:"size:100"`
	URLKey      string           `json:"url_key" gorm:"size:255;index"`
	RetailPrice *decimal.Decimal `json:"retail_price,omitempty" gorm:"type:decimal(12,2)"`
	Currency    string           `json:"currency" gorm:"size:3;default:'USD'"`
	ReleaseDate *time.Time       `json:"release_date,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Variants []Variant `json:"variants,omitempty" gorm:"foreignKey:ProductID;references:ProductID"`
	Listings []Listing `json:"listings,omitempty" gorm:"foreignKey:ProductID;references:ProductID"`
}
