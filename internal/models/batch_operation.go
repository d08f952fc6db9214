// internal/models/batch_operation.go
package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type BatchOperation struct {
	BaseModel
	OperationType BatchOperationType `json:"operation_type" gorm:"type:varchar(20);not null"`
	Status        BatchStatus        `json:"status" gorm:"type:varchar(20);default:'QUEUED';index"`
	VariantID     string             `json:"variant_id" gorm:"size:255;index"`
	ListingIDs    pq.StringArray     `json:"listing_ids" gorm:"type:text[]"`
	TargetPrice   *decimal.Decimal   `json:"target_price,omitempty" gorm:"type:decimal(12,2)"`
	Currency      string             `json:"currency" gorm:"size:3;default:'USD'"`
	UpdatedCount  int                `json:"updated_count" gorm:"default:0"`
	SkippedCount  int                `json:"skipped_count" gorm:"default:0"`
	ErrorDetail   JSONB              `json:"error_detail,omitempty" gorm:"type:jsonb"`
	StartedAt     *time.Time         `json:"started_at,omitempty"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
}
