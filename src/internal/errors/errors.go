// Package errors provides domain-specific error types for ztproxy.
//
// Every failure surfaced to a user carries one code from a closed set, so the
// CLI and the proxy API can report the kind of failure without string
// matching. Errors compare equal under errors.Is when their codes match.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeInvalidPrefixLength indicates a prefix length incompatible with
	// the address family (0-32 for IPv4, 0-128 for IPv6).
	ErrCodeInvalidPrefixLength ErrorCode = "INVALID_PREFIX_LENGTH"

	// ErrCodeNoCarryingNetwork indicates a route whose gateway is not
	// contained in any route target of the same network.
	ErrCodeNoCarryingNetwork ErrorCode = "NO_CARRYING_NETWORK_FOR_GATEWAY"

	// ErrCodeValidation indicates a network configuration that failed
	// structural validation.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeTransport indicates a failure talking to the controller
	// (network, HTTP status or serialization).
	ErrCodeTransport ErrorCode = "TRANSPORT_ERROR"

	// ErrCodeConfig indicates a problem with the ztproxy configuration file
	// or environment.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeUsage indicates invalid command-line input.
	ErrCodeUsage ErrorCode = "USAGE_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks against a code.
var (
	ErrInvalidPrefixLength = New(ErrCodeInvalidPrefixLength, "invalid prefix length")
	ErrNoCarryingNetwork   = New(ErrCodeNoCarryingNetwork, "no carrying network for gateway")
	ErrValidation          = New(ErrCodeValidation, "validation failed")
	ErrTransport           = New(ErrCodeTransport, "controller transport failure")
	ErrConfig              = New(ErrCodeConfig, "configuration error")
	ErrUsage               = New(ErrCodeUsage, "usage error")
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Coder is implemented by error types that are not *Error but still belong
// to one of the codes above.
type Coder interface {
	ErrorCode() ErrorCode
}

// CodeOf returns the code of the first Coder or *Error in err's chain, or
// ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var coder Coder
	if stderrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	var coded *Error
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	return ErrCodeInternal
}

// NewTransportError creates a new controller transport error.
func NewTransportError(message string, cause error) *Error {
	return Wrap(ErrCodeTransport, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewUsageError creates a new command-line usage error.
func NewUsageError(message string) *Error {
	return New(ErrCodeUsage, message)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
