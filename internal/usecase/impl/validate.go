// Package impl contains the envelope-returning implementations of the
// operation catalog. Every method follows the same contract: validate the
// input, issue the request through the shared gateway, and normalize the
// outcome into the envelope. No method ever returns or panics with an error.
package impl

import (
	"fmt"
	"strings"

	"beacon/internal/errors"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds the validator shared by all services.
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validationMessage turns a validator error into a single field-level
// message, mirroring how the server reports the first failing field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid input"
	}

	fieldErr := verrs[0]
	field := strings.ToLower(fieldErr.Field())

	switch fieldErr.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "a valid email address is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
	case "excluded_with":
		return fmt.Sprintf("%s cannot be combined with %s", field, strings.ToLower(fieldErr.Param()))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
