// internal/models/listing.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Listing struct {
	ListingID     string          `json:"listing_id" gorm:"size:255;primary_key"`
	VariantID     string          `json:"variant_id" gorm:"size:255;not null;index"`
	ProductID     *string         `json:"product_id,omitempty" gorm:"size:255;index"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Currency      string          `json:"currency" gorm:"size:3;default:'USD'"`
	Status        ListingStatus   `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	InventoryType InventoryType   `json:"inventory_type" gorm:"type:varchar(20);default:'STANDARD'"`
	Quantity      int             `json:"quantity" gorm:"default:1"`
	AskID         string          `json:"ask_id" gorm:"size:255"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty" gorm:"index"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Variant Variant `json:"variant,omitempty" gorm:"foreignKey:VariantID;references:VariantID"`
}
