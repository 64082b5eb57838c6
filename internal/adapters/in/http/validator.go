package http

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator checks request bodies against their validate tags.
//
// Besides the built-in rules it knows:
//   - hhmm_interval: a "HH:MM-HH:MM" string with start not after end
//   - courier_type: one of FOOT, BIKE, AUTO
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("hhmm_interval", func(fl validator.FieldLevel) bool {
		_, err := kernel.ParseTimeInterval(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("courier_type", func(fl validator.FieldLevel) bool {
		_, err := courier.ParseType(fl.Field().String())
		return err == nil
	})
	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator. Failures wrap errs.ErrValueIsInvalid.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body is invalid", err)
	}
	return nil
}
