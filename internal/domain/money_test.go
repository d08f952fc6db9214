// internal/domain/money_test.go
package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount, currency string) Money {
	t.Helper()
	m, err := NewMoneyFromString(amount, currency)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		wantErr  bool
	}{
		{"valid amount", "199.99", "USD", false},
		{"zero amount", "0", "USD", false},
		{"lowercase currency normalized", "10.00", "usd", false},
		{"negative amount rejected", "-1.00", "USD", true},
		{"empty currency rejected", "10.00", "", true},
		{"two letter currency rejected", "10.00", "US", true},
		{"numeric currency rejected", "10.00", "U5D", true},
		{"garbage amount rejected", "ten dollars", "USD", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.amount, tt.currency)
			if tt.wantErr {
				require.Error(t, err)
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.Equal(t, KindInvalidMoney, ve.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "USD", m.CurrencyCode())
		})
	}
}

func TestMoneyPrecisionPreserved(t *testing.T) {
	m := mustMoney(t, "199.99", "USD")

	// Decimal in, decimal out, never 199.9899999.
	assert.Equal(t, "199.99", m.Amount().String())
	assert.Equal(t, "199.99", m.toRecord()["amount"])
}

func TestMoneyArithmetic(t *testing.T) {
	a := mustMoney(t, "100.50", "USD")
	b := mustMoney(t, "25.25", "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "125.75", sum.Amount().String())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "75.25", diff.Amount().String())

	// Arithmetic returns new values; operands are untouched.
	assert.Equal(t, "100.50", a.Amount().String())

	_, err = b.Subtract(a)
	require.Error(t, err, "subtraction below zero must fail")

	eur := mustMoney(t, "10.00", "EUR")
	_, err = a.Add(eur)
	require.Error(t, err)
	var de *DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, KindCurrencyMismatch, de.Kind)

	_, err = a.LessThan(eur)
	assert.Error(t, err, "currency mismatch comparison must error, not coerce")
}

func TestMoneyEquality(t *testing.T) {
	assert.True(t, mustMoney(t, "10.00", "USD").Equals(mustMoney(t, "10.00", "USD")))
	assert.True(t, mustMoney(t, "10", "USD").Equals(mustMoney(t, "10.00", "USD")), "equality is numeric, not textual")
	assert.False(t, mustMoney(t, "10.00", "USD").Equals(mustMoney(t, "10.00", "EUR")))
	assert.False(t, mustMoney(t, "10.00", "USD").Equals(mustMoney(t, "10.01", "USD")))
}

func TestMoneyOrdering(t *testing.T) {
	a := mustMoney(t, "95.50", "USD")
	b := mustMoney(t, "120.00", "USD")

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, greater)
}

func TestNewMoneyRejectsNegativeDecimal(t *testing.T) {
	_, err := NewMoney(decimal.NewFromFloat(-0.01), "USD")
	require.Error(t, err)
}
