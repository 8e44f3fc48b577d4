package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/maksimkurb/ztproxy/src/internal/controller"
	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
	"github.com/maksimkurb/ztproxy/src/internal/log"
	"github.com/maksimkurb/ztproxy/src/internal/network"
)

// ErrorCode represents standard API error codes.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates malformed or invalid request data.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeForbidden indicates the client address is not allowed.
	ErrCodeForbidden ErrorCode = "forbidden"

	// ErrCodeInternalError indicates an internal server error.
	ErrCodeInternalError ErrorCode = "internal_error"

	// ErrCodeValidationFailed indicates the network configuration failed validation.
	ErrCodeValidationFailed ErrorCode = "validation_failed"

	// ErrCodeControllerError indicates the controller could not be reached or
	// rejected the request.
	ErrCodeControllerError ErrorCode = "controller_error"
)

// APIError represents a structured API error response.
type APIError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError for JSON responses.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code ErrorCode, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
		Details: nil,
	}
}

// WithDetails adds details to an APIError.
func (e APIError) WithDetails(details map[string]interface{}) APIError {
	e.Details = details
	return e
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, statusCode int, err APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if encodeErr := json.NewEncoder(w).Encode(ErrorResponse{Error: err}); encodeErr != nil {
		log.Warnf("Failed to encode error response: %v", encodeErr)
	}
}

// WriteInvalidRequest writes a 400 Bad Request error.
func WriteInvalidRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeInvalidRequest, message))
}

// WriteNotFound writes a 404 Not Found error.
func WriteNotFound(w http.ResponseWriter, resource string) {
	WriteError(w, http.StatusNotFound, NewAPIError(ErrCodeNotFound, resource+" not found"))
}

// WriteForbidden writes a 403 Forbidden error.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// WriteInternalError writes a 500 Internal Server Error.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// WriteValidationError writes a 422 Unprocessable Entity with per-field details.
func WriteValidationError(w http.ResponseWriter, message string, details map[string]interface{}) {
	err := NewAPIError(ErrCodeValidationFailed, message).WithDetails(details)
	WriteError(w, http.StatusUnprocessableEntity, err)
}

// WriteControllerError writes a 502 Bad Gateway for controller failures.
func WriteControllerError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadGateway, NewAPIError(ErrCodeControllerError, message))
}

// WriteDomainError maps an error returned by the network model or the
// controller client to the matching status and envelope. The coded error
// kind is always reported as details.kind.
func WriteDomainError(w http.ResponseWriter, err error) {
	kind := string(zterrors.CodeOf(err))

	var validationErrs network.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		details := validationErrs.Fields()
		details["kind"] = kind
		WriteValidationError(w, "Network configuration is invalid", details)

	case errors.Is(err, zterrors.ErrValidation),
		errors.Is(err, zterrors.ErrNoCarryingNetwork),
		errors.Is(err, zterrors.ErrInvalidPrefixLength):
		WriteValidationError(w, err.Error(), map[string]interface{}{"kind": kind})

	case controller.IsNotFound(err):
		WriteNotFound(w, "Resource")

	case errors.Is(err, zterrors.ErrTransport):
		WriteError(w, http.StatusBadGateway,
			NewAPIError(ErrCodeControllerError, err.Error()).WithDetails(map[string]interface{}{"kind": kind}))

	case errors.Is(err, zterrors.ErrUsage):
		WriteInvalidRequest(w, err.Error())

	default:
		log.Errorf("Unhandled error: %v", err)
		WriteInternalError(w, err.Error())
	}
}
