// Package validator adapts go-playground/validator to echo.
package validator

import (
	"basecamp/internal/domain/entity"
	domainerrors "basecamp/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds a validator with the roster-specific rules registered.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// "tier" accepts Elite, Standard or Probation
	_ = v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseTier(fl.Field().String())

		return ok
	})

	return &CustomValidator{validate: v}
}

// Validate returns ErrValidationFailed with the failing fields as details.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
