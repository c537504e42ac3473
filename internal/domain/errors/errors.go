package errors

import (
	"net/http"

	"basecamp/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid request parameters",
		"",
	)

	ErrTokenMissing = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_MISSING",
		"Access token is missing",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"Invalid or expired access token",
		"",
	)

	ErrRoleRequired = NewBaseError(
		http.StatusForbidden,
		"ROLE_REQUIRED",
		"Access denied for this role",
		"",
	)

	ErrRosterNotReady = NewBaseError(
		http.StatusGatewayTimeout,
		"ROSTER_NOT_READY",
		"Roster did not load before the request ended",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// RosterFetchError reports the single failed read of a roster mount.
// The message is the underlying cause's text, shown to users unchanged.
type RosterFetchError struct {
	message string
}

// NewRosterFetchError creates the fetch-failed error for the captured message
func NewRosterFetchError(message string) AppError {
	return &RosterFetchError{message: message}
}

func (e *RosterFetchError) Error() string {
	return "fetch failed: " + e.message
}

// HTTPCode reports the upstream failure as a bad gateway.
func (e *RosterFetchError) HTTPCode() int {
	return http.StatusBadGateway
}

func (e *RosterFetchError) ErrorCode() string {
	return "ROSTER_FETCH_FAILED"
}

func (e *RosterFetchError) Message() string {
	return e.message
}

func (e *RosterFetchError) Details() string {
	return ""
}
