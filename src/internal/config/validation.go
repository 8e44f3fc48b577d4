package config

import (
	"fmt"
	"net"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "http_url":
		return "must be a valid http:// or https:// URL"
	case "hostport":
		return "must be in format 'host:port'"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // Section name (e.g., "controller", "api")
	FieldPath string // Dot-notation field path (e.g., "controller.url", "api.listen")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

// ErrorCode reports configuration validation failures as CONFIG_ERROR.
func (ve ValidationErrors) ErrorCode() zterrors.ErrorCode {
	return zterrors.ErrCodeConfig
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("hostport", validateHostPort); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: host:port format with a port
func validateHostPort(fl validator.FieldLevel) bool {
	_, port, err := net.SplitHostPort(fl.Field().String())
	return err == nil && port != ""
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, prefix, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{ItemName: itemName, FieldPath: prefix, Message: err.Error()}}
	}

	for _, e := range validatorErrs {
		fieldPath := e.Field()
		if prefix != "" {
			fieldPath = prefix + "." + fieldPath
		}
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  itemName,
			FieldPath: fieldPath,
			Message:   getValidationMessage(e),
		})
	}

	return validationErrors
}
