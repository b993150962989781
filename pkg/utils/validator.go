// Package utils provides validation and formatting helpers shared across the service.
package utils

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/openkyc/kyc/pkg/errors"
)

// nikPattern matches an Indonesian national identity number: exactly 16 digits.
var nikPattern = regexp.MustCompile(`^\d{16}$`)

// defaultValidator holds the singleton instance of the validator.
var defaultValidator *validator.Validate

func init() {
	defaultValidator = validator.New()
	if err := defaultValidator.RegisterValidation("nik", validateNIKField); err != nil {
		panic(err)
	}
}

// ValidNIK reports whether the given string is a well-formed NIK.
func ValidNIK(nik string) bool {
	return nikPattern.MatchString(nik)
}

// validateNIKField adapts ValidNIK for struct tag validation.
func validateNIKField(fl validator.FieldLevel) bool {
	return ValidNIK(fl.Field().String())
}

// ValidateStruct validates a struct using the default validator and returns a
// formatted AppError when validation fails.
func ValidateStruct(s interface{}) error {
	err := defaultValidator.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.ErrValidation(err.Error())
	}
	appErr := errors.ErrValidation("request validation failed")
	for _, fe := range validationErrors {
		appErr = appErr.WithMetadata(fe.Field(), formatValidationError(fe))
	}
	return appErr
}

// formatValidationError creates a user-friendly message for a single field error.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "nik":
		return "must be a 16-digit number"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
