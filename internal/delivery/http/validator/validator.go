// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "gatekeeper/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type requestValidator struct {
	validate *playground.Validate
}

// New returns an Echo Validator backed by go-playground/validator struct tags.
func New() echo.Validator {
	return &requestValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate checks the bound request DTO against its `validate` tags.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
