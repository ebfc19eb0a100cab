// Package validation checks request payloads with go-playground/validator
// and reports failures as field-keyed domain errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	domainerrors "github.com/shelfpostapp/shelfpost-server/internal/errors"
)

// Validator checks tagged structs and translates failures into the
// VALIDATION domain error the API layer renders.
type Validator struct {
	check *validator.Validate
}

// New builds a validator that reports fields by their JSON names, so error
// details line up with the payload the client actually sent.
func New() *Validator {
	check := validator.New()

	check.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		name, _, _ = strings.Cut(name, ",")
		if name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{check: check}
}

// Validate checks s against its validate tags. On failure it returns a
// domain validation error carrying one message per offending field.
func (v *Validator) Validate(s any) error {
	err := v.check.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = describe(fe)
	}
	return domainerrors.ValidationWithDetails("validation failed", details)
}

// describe turns a failed tag into a message a client can show. Covers the
// tags the request DTOs use; anything else falls through to a generic line.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "alphanum":
		return "may only contain letters and digits"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
