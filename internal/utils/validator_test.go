// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceForm struct {
	Price    string `validate:"required,decimal_amount"`
	Currency string `validate:"omitempty,currency_code"`
}

func TestDecimalAmountTag(t *testing.T) {
	assert.NoError(t, ValidateStruct(&priceForm{Price: "249.99"}))
	assert.NoError(t, ValidateStruct(&priceForm{Price: "100"}))

	for _, bad := range []string{"-5", "1.999", "abc", "12,50"} {
		assert.Error(t, ValidateStruct(&priceForm{Price: bad}), "amount %q must be rejected", bad)
	}
}

func TestCurrencyCodeTag(t *testing.T) {
	assert.NoError(t, ValidateStruct(&priceForm{Price: "10.00", Currency: "USD"}))
	assert.NoError(t, ValidateStruct(&priceForm{Price: "10.00"}), "currency is optional")

	assert.Error(t, ValidateStruct(&priceForm{Price: "10.00", Currency: "usd"}))
	assert.Error(t, ValidateStruct(&priceForm{Price: "10.00", Currency: "DOLLARS"}))
}

func TestGetValidationErrorsMessages(t *testing.T) {
	err := ValidateStruct(&priceForm{Price: "1.999", Currency: "usd"})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, "price", errs[0].Field)
	assert.Equal(t, "decimal_amount", errs[0].Tag)
	assert.Equal(t, "currency", errs[1].Field)
	assert.Equal(t, "currency_code", errs[1].Tag)
}
