package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/simoncdt/vericoupon/internal/provider"
)

// New creates a new validator instance with custom validations registered.
// This ensures consistent validation across the application and tests.
func New() *validator.Validate {
	v := validator.New()

	// Register custom "notblank" validator - rejects whitespace-only strings.
	// Used for identity fields and coupon codes that must carry content.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true // Not a string, let other validators handle it
		}
		return strings.TrimSpace(str) != ""
	})

	// Register custom "providerkey" validator - the field must name an
	// entry in the provider catalog (case-insensitive).
	_ = v.RegisterValidation("providerkey", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true
		}
		_, found := provider.Lookup(str)
		return found
	})

	return v
}
