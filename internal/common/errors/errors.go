// Package errors provides standardized error handling for the carrier API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized machine-readable error codes. These are
// part of the external contract: clients branch on them.
type ErrorCode string

const (
	ErrCodeCarrierNotFound ErrorCode = "CARRIER_NOT_FOUND"
	ErrCodeQuoteNotFound   ErrorCode = "QUOTE_NOT_FOUND"
	ErrCodeQuoteExpired    ErrorCode = "QUOTE_EXPIRED"
	ErrCodePolicyNotFound  ErrorCode = "POLICY_NOT_FOUND"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// Error Constructors
// ==========================

// NewCarrierNotFoundError creates a non-retryable unknown-carrier error.
func NewCarrierNotFoundError(carrierID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCarrierNotFound,
		Message:   fmt.Sprintf("Carrier '%s' not found", carrierID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuoteNotFoundError creates a non-retryable unknown-quote error.
func NewQuoteNotFoundError(quoteID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuoteNotFound,
		Message:   fmt.Sprintf("Quote '%s' not found", quoteID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuoteExpiredError creates a non-retryable expired-quote error. The
// expiry instant and quote id ride along as metadata for the response body.
func NewQuoteExpiredError(quoteID, expiredAt string) *StandardError {
	return &StandardError{
		Code:    ErrCodeQuoteExpired,
		Message: "Quote has expired and is no longer bindable",
		Metadata: map[string]interface{}{
			"expired_at": expiredAt,
			"quote_id":   quoteID,
		},
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPolicyNotFoundError creates a non-retryable unknown-policy error.
func NewPolicyNotFoundError(policyID string) *StandardError {
	return &StandardError{
		Code:      ErrCodePolicyNotFound,
		Message:   fmt.Sprintf("Policy '%s' not found", policyID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates a non-retryable authentication error.
func NewUnauthorizedError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable validation error. Field-level
// findings go into metadata under "details".
func NewInvalidRequestError(message string, details []map[string]interface{}) *StandardError {
	e := &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
	if len(details) > 0 {
		e.Metadata = map[string]interface{}{"details": details}
	}
	return e
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "An unexpected error occurred",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Transport Mapping
// ==========================

// HTTPStatus maps an error code to the HTTP status the boundary responds with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeCarrierNotFound, ErrCodeQuoteNotFound, ErrCodePolicyNotFound:
		return http.StatusNotFound
	case ErrCodeQuoteExpired:
		return http.StatusGone
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AsStandardError unwraps err into a *StandardError when possible.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}
