// internal/domain/enums.go
package domain

// ListingStatus is the closed set of listing lifecycle states. SOLD,
// CANCELLED and EXPIRED are terminal.
type ListingStatus string

const (
	ListingStatusPending   ListingStatus = "PENDING"
	ListingStatusActive    ListingStatus = "ACTIVE"
	ListingStatusSold      ListingStatus = "SOLD"
	ListingStatusCancelled ListingStatus = "CANCELLED"
	ListingStatusExpired   ListingStatus = "EXPIRED"
)

func ParseListingStatus(value string) (ListingStatus, error) {
	switch ListingStatus(value) {
	case ListingStatusPending, ListingStatusActive, ListingStatusSold,
		ListingStatusCancelled, ListingStatusExpired:
		return ListingStatus(value), nil
	}
	return "", newValidationError(KindInvalidStatus, "status", "unknown listing status: %q", value)
}

func (s ListingStatus) IsTerminal() bool {
	return s == ListingStatusSold || s == ListingStatusCancelled || s == ListingStatusExpired
}

// InventoryType classifies how a listed item is fulfilled by the marketplace.
type InventoryType string

const (
	InventoryTypeStandard InventoryType = "STANDARD"
	InventoryTypeFlex     InventoryType = "FLEX"
	InventoryTypeDirect   InventoryType = "DIRECT"
)

func ParseInventoryType(value string) (InventoryType, error) {
	switch InventoryType(value) {
	case InventoryTypeStandard, InventoryTypeFlex, InventoryTypeDirect:
		return InventoryType(value), nil
	}
	return "", newValidationError(KindInvalidStatus, "inventory_type", "unknown inventory type: %q", value)
}

// BatchStatus tracks the outcome of a bulk listing operation.
type BatchStatus string

const (
	BatchStatusQueued     BatchStatus = "QUEUED"
	BatchStatusProcessing BatchStatus = "PROCESSING"
	BatchStatusCompleted  BatchStatus = "COMPLETED"
	BatchStatusFailed     BatchStatus = "FAILED"
	BatchStatusPartial    BatchStatus = "PARTIAL"
)

func ParseBatchStatus(value string) (BatchStatus, error) {
	switch BatchStatus(value) {
	case BatchStatusQueued, BatchStatusProcessing, BatchStatusCompleted,
		BatchStatusFailed, BatchStatusPartial:
		return BatchStatus(value), nil
	}
	return "", newValidationError(KindInvalidStatus, "batch_status", "unknown batch status: %q", value)
}
