// Package errors provides standardized error handling for the webhook backend.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Webhook / dispatch errors
const (
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrCodeUnknownFunction ErrorCode = "UNKNOWN_FUNCTION"
	ErrCodeMissingArgument ErrorCode = "MISSING_ARGUMENT"
)

// Directory resolver errors
const (
	ErrCodePersonNotFound          ErrorCode = "PERSON_NOT_FOUND"
	ErrCodeDirectoryUpstreamFailed ErrorCode = "DIRECTORY_UPSTREAM_FAILED"
)

// Scheduling resolver errors. The two parse codes are distinct on purpose:
// the upstream wraps its real payload in a JSON-encoded string, so decoding
// happens in two stages and each stage can fail independently.
const (
	ErrCodeMissingIdentifiers           ErrorCode = "MISSING_IDENTIFIERS"
	ErrCodeSchedulingUpstreamFailed     ErrorCode = "SCHEDULING_UPSTREAM_FAILED"
	ErrCodeSchedulingParseFailed        ErrorCode = "SCHEDULING_PARSE_FAILED"
	ErrCodeSchedulingContentParseFailed ErrorCode = "SCHEDULING_CONTENT_PARSE_FAILED"
	ErrCodeSchedulingNotSuccessful      ErrorCode = "SCHEDULING_NOT_SUCCESSFUL"
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

// CodeOf extracts the ErrorCode from any error. Errors that are not
// StandardErrors report INVALID_REQUEST at the transport boundary.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Code
	}
	return ErrCodeInvalidRequest
}

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}

// ==========================
// 2. HTTP Integration
// ==========================

// HTTPStatus maps an error code to the status the webhook responds with.
// PERSON_NOT_FOUND never reaches this mapping: it is a normal negative
// result, folded into a found:false payload by the dispatcher.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeUnauthorized:
		return http.StatusForbidden
	case ErrCodeInvalidRequest, ErrCodeUnknownFunction, ErrCodeMissingArgument:
		return http.StatusBadRequest
	case ErrCodeDirectoryUpstreamFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewUnauthorizedError creates a non-retryable secret-mismatch error. The
// message is internal only; the HTTP layer answers 403 with an empty body.
func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Webhook secret missing or invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable bad-envelope error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownFunctionError creates a non-retryable unknown-function error.
func NewUnknownFunctionError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownFunction,
		Message:   fmt.Sprintf("Unknown function: %s", name),
		Details:   fmt.Sprintf("functionName: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingArgumentError creates a non-retryable missing-argument error.
func NewMissingArgumentError(argument, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingArgument,
		Message:   message,
		Details:   fmt.Sprintf("argument: %s", argument),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersonNotFoundError creates the normal negative directory result.
func NewPersonNotFoundError(fullName, company string) *StandardError {
	return &StandardError{
		Code:      ErrCodePersonNotFound,
		Message:   fmt.Sprintf("No person found with the name '%s' in company '%s'", fullName, company),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDirectoryUpstreamError creates a retryable directory-service error.
func NewDirectoryUpstreamError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDirectoryUpstreamFailed,
		Message:   "Directory service request failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingIdentifiersError creates a local precondition error raised before
// any scheduling network call is made.
func NewMissingIdentifiersError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingIdentifiers,
		Message:   "Missing concernId or personId",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchedulingUpstreamError creates a retryable scheduling-service error.
func NewSchedulingUpstreamError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchedulingUpstreamFailed,
		Message:   "Failed to check availability",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchedulingParseError creates a non-retryable first-stage decode error.
func NewSchedulingParseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchedulingParseFailed,
		Message:   "Failed to parse API response",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchedulingContentParseError creates a non-retryable second-stage decode
// error for the JSON-encoded content field.
func NewSchedulingContentParseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchedulingContentParseFailed,
		Message:   "Failed to parse API response content",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchedulingNotSuccessfulError creates an error for well-formed responses
// whose success flag is false or absent.
func NewSchedulingNotSuccessfulError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSchedulingNotSuccessful,
		Message:   "API request was not successful",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
