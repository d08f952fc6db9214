// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("currency_code", validateCurrencyCode)
	validate.RegisterValidation("decimal_amount", validateDecimalAmount)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	matched, _ := regexp.MatchString("^[A-Z]{3}$", code)
	return matched
}

func validateDecimalAmount(fl validator.FieldLevel) bool {
	amount := fl.Field().String()
	matched, _ := regexp.MatchString(`^\d+(\.\d{1,2})?$`, amount)
	return matched
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "currency_code":
		return "Currency must be a 3-letter ISO code"
	case "decimal_amount":
		return "Amount must be a decimal number with at most 2 fraction digits"
	default:
		return e.Field() + " is invalid"
	}
}
