// internal/domain/errors.go
package domain

import "fmt"

// Error kinds used across the domain layer. Handlers map these onto HTTP
// status codes; the domain itself never inspects them.
type ErrorKind string

const (
	// Validation error kinds (value object construction)
	KindInvalidMoney      ErrorKind = "INVALID_MONEY"
	KindInvalidIdentifier ErrorKind = "INVALID_IDENTIFIER"
	KindInvalidUPC        ErrorKind = "INVALID_UPC"
	KindInvalidTimeRange  ErrorKind = "INVALID_TIME_RANGE"
	KindInvalidQuantity   ErrorKind = "INVALID_QUANTITY"
	KindInvalidStatus     ErrorKind = "INVALID_STATUS"
	KindInvalidMarketData ErrorKind = "INVALID_MARKET_DATA"
	KindInvalidField      ErrorKind = "INVALID_FIELD"

	// Domain error kinds (business rule violations)
	KindVariantProductMismatch ErrorKind = "VARIANT_PRODUCT_MISMATCH"
	KindListingVariantMismatch ErrorKind = "LISTING_VARIANT_MISMATCH"
	KindDuplicateMember        ErrorKind = "DUPLICATE_MEMBER"
	KindMemberNotFound         ErrorKind = "MEMBER_NOT_FOUND"
	KindInvalidStateTransition ErrorKind = "INVALID_STATE_TRANSITION"
	KindListingNotModifiable   ErrorKind = "LISTING_NOT_MODIFIABLE"
	KindCurrencyMismatch       ErrorKind = "CURRENCY_MISMATCH"
)

// ValidationError reports a field-level constraint violation raised by a
// value object constructor.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed (%s): %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Message)
}

func newValidationError(kind ErrorKind, field, format string, args ...interface{}) error {
	return &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// DomainError reports a business-rule violation: aggregate membership
// mismatches, illegal listing state transitions, and the like.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain rule violated (%s): %s", e.Kind, e.Message)
}

func newDomainError(kind ErrorKind, format string, args ...interface{}) error {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// MappingError reports malformed external or persisted input handed to a
// factory. Field names the offending key in the source payload.
type MappingError struct {
	Field   string
	Message string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping failed: %s: %s", e.Field, e.Message)
}

func newMappingError(field, format string, args ...interface{}) error {
	return &MappingError{Field: field, Message: fmt.Sprintf(format, args...)}
}
