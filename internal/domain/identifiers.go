// internal/domain/identifiers.go
package domain

import "strings"

// Typed identifier wrappers. ProductID, VariantID and StyleID are distinct
// types on purpose: the compiler rejects passing one where another is
// expected, so a variant ID can never silently stand in for a product ID.

type ProductID struct {
	value string
}

func NewProductID(value string) (ProductID, error) {
	v, err := requireIdentifier("product_id", value)
	if err != nil {
		return ProductID{}, err
	}
	return ProductID{value: v}, nil
}

func (id ProductID) Value() string              { return id.value }
func (id ProductID) String() string             { return id.value }
func (id ProductID) IsZero() bool               { return id.value == "" }
func (id ProductID) Equals(other ProductID) bool { return id.value == other.value }

type VariantID struct {
	value string
}

func NewVariantID(value string) (VariantID, error) {
	v, err := requireIdentifier("variant_id", value)
	if err != nil {
		return VariantID{}, err
	}
	return VariantID{value: v}, nil
}

func (id VariantID) Value() string              { return id.value }
func (id VariantID) String() string             { return id.value }
func (id VariantID) IsZero() bool               { return id.value == "" }
func (id VariantID) Equals(other VariantID) bool { return id.value == other.value }

// StyleID is the catalog code (SKU) printed on the box. Normalized to
// upper case so lookups are case-insensitive.
type StyleID struct {
	value string
}

func NewStyleID(value string) (StyleID, error) {
	v, err := requireIdentifier("style_id", value)
	if err != nil {
		return StyleID{}, err
	}
	return StyleID{value: strings.ToUpper(v)}, nil
}

func (id StyleID) Value() string             { return id.value }
func (id StyleID) String() string            { return id.value }
func (id StyleID) Equals(other StyleID) bool { return id.value == other.value }

func requireIdentifier(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", newValidationError(KindInvalidIdentifier, field, "identifier cannot be empty or whitespace")
	}
	if len(v) > 255 {
		return "", newValidationError(KindInvalidIdentifier, field, "identifier exceeds 255 characters")
	}
	return v, nil
}

// UPC is a 12, 13 or 14 digit GTIN. The trailing check digit is verified at
// construction; an invalid code is never stored.
type UPC struct {
	value string
}

func NewUPC(value string) (UPC, error) {
	v := strings.TrimSpace(value)
	if len(v) < 12 || len(v) > 14 {
		return UPC{}, newValidationError(KindInvalidUPC, "upc", "UPC must be 12, 13, or 14 digits: %q", value)
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return UPC{}, newValidationError(KindInvalidUPC, "upc", "UPC must contain only digits: %q", value)
		}
	}
	if !upcCheckDigitValid(v) {
		return UPC{}, newValidationError(KindInvalidUPC, "upc", "UPC check digit mismatch: %q", value)
	}
	return UPC{value: v}, nil
}

func (u UPC) Value() string         { return u.value }
func (u UPC) String() string        { return u.value }
func (u UPC) Equals(other UPC) bool { return u.value == other.value }

// upcCheckDigitValid verifies the GS1 check digit: weights alternate 3 and 1
// starting from the digit immediately left of the check digit.
func upcCheckDigitValid(code string) bool {
	sum := 0
	weight := 3
	for i := len(code) - 2; i >= 0; i-- {
		sum += int(code[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	check := (10 - sum%10) % 10
	return check == int(code[len(code)-1]-'0')
}
