// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	}
}

// validatePositiveAmount accepts integer-backed amounts greater than zero.
func validatePositiveAmount(fl validator.FieldLevel) bool {
	f := fl.Field()
	if !f.CanInt() {
		return false
	}
	return f.Int() > 0
}
