// internal/models/historical_price.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type HistoricalPrice struct {
	BaseModel
	VariantID string          `json:"variant_id" gorm:"size:255;not null;index"`
	ProductID string          `json:"product_id" gorm:"size:255;not null;index"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Currency  string          `json:"currency" gorm:"size:3;default:'USD'"`
	SaleDate  time.Time       `json:"sale_date" gorm:"not null;index"`
	Size      string          `json:"size" gorm:"size:50"`
	OrderType string          `json:"order_type" gorm:"size:50"`
}
