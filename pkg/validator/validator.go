package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request DTOs.
type CustomValidator struct {
	v *validator.Validate
}

// New creates a validator with the default tag rules
func New() *CustomValidator {
	return &CustomValidator{v: validator.New()}
}

// Validate checks the struct against its validate tags
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
