// internal/domain/money.go
package domain

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Money is an immutable amount plus ISO 4217 currency code. Amounts are
// decimal, never floats, so "199.99" stays "199.99" through persistence.
// Negative amounts are rejected; all arithmetic returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currencyCode string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, newValidationError(KindInvalidMoney, "amount", "amount cannot be negative: %s", amount.String())
	}
	code, err := normalizeCurrency(currencyCode)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: code}, nil
}

// NewMoneyFromString parses a decimal string such as "199.99".
func NewMoneyFromString(amount, currencyCode string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, newValidationError(KindInvalidMoney, "amount", "not a decimal amount: %q", amount)
	}
	return NewMoney(d, currencyCode)
}

func normalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", newValidationError(KindInvalidMoney, "currency_code", "currency code must be 3 characters (ISO 4217): %q", code)
	}
	for _, r := range code {
		if !unicode.IsUpper(r) {
			return "", newValidationError(KindInvalidMoney, "currency_code", "currency code must be alphabetic: %q", code)
		}
	}
	return code, nil
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) CurrencyCode() string    { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

// Add returns the sum. Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference. A result below zero is rejected rather
// than returned, so Money can never hold a negative amount.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, newValidationError(KindInvalidMoney, "amount", "subtraction would produce a negative amount")
	}
	return Money{amount: result, currency: m.currency}, nil
}

// Equals is structural: same amount and same currency.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) LessThan(other Money) (bool, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

func (m Money) requireSameCurrency(other Money) error {
	if m.currency != other.currency {
		return newDomainError(KindCurrencyMismatch, "cannot compare %s with %s", m.currency, other.currency)
	}
	return nil
}

func (m Money) String() string {
	return m.currency + " " + m.amount.StringFixed(2)
}

// toRecord serializes Money for persistence. The amount stays a string so
// no precision is lost on round trip.
func (m Money) toRecord() map[string]interface{} {
	return map[string]interface{}{
		"amount":        m.amount.String(),
		"currency_code": m.currency,
	}
}
