// Package validator plugs go-playground/validator into echo and turns its
// failures into field errors the error handler can render.
package validator

import (
	"reflect"
	"strings"

	domainerrors "gatekeeper/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ValidationError lists every rejected field of one request.
type ValidationError struct {
	Fields []domainerrors.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match the generic validation error.
func (e *ValidationError) Unwrap() error {
	return domainerrors.ErrValidationFailed
}

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New returns a validator that reports fields by their JSON names.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &CustomValidator{validate: validate}
}

// Validate runs the struct tags of i.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	out := &ValidationError{Fields: make([]domainerrors.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, domainerrors.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}

	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Not a valid email"
	case "min":
		return fe.Field() + " too short - should be " + fe.Param() + " chars minimum"
	case "max":
		return fe.Field() + " too long - should be " + fe.Param() + " chars maximum"
	case "eqfield":
		return "Passwords do not match"
	case "url":
		return fe.Field() + " must be a URL"
	default:
		return fe.Field() + " is invalid"
	}
}
