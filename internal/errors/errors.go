package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches wrapped copies of a predefined error by code so that
// errors.Is(WrapError(ErrStorage, err), ErrStorage) holds.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Input errors
	ErrValidation = NewDomainError("VALIDATION_ERROR", "missing or malformed input")

	// User lifecycle errors
	ErrEmailExists  = NewDomainError("EMAIL_EXISTS", "a user with this email already exists")
	ErrUserNotFound = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrSelfDeletion = NewDomainError("SELF_DELETION", "users cannot delete themselves")

	// Authentication errors. ErrInvalidCredentials is intentionally
	// identical for unknown-email and wrong-password failures;
	// ErrAccountPending is the single exception that reveals account
	// existence so pending invitees know to finish setup.
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid email or password")
	ErrAccountPending     = NewDomainError("ACCOUNT_PENDING", "account is pending activation")
	ErrIncorrectPassword  = NewDomainError("INCORRECT_PASSWORD", "current password is incorrect")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrForbidden          = NewDomainError("FORBIDDEN", "forbidden")

	// Token errors. Expired, mismatched and missing tokens are deliberately
	// indistinguishable to the caller.
	ErrInvalidToken = NewDomainError("INVALID_TOKEN", "invalid or expired token")
	ErrTokenRevoked = NewDomainError("TOKEN_REVOKED", "token has been revoked")

	// Dependency errors
	ErrStorage      = NewDomainError("STORAGE_ERROR", "storage operation failed")
	ErrNotification = NewDomainError("NOTIFICATION_ERROR", "notification delivery failed")
	ErrInternal     = NewDomainError("INTERNAL_ERROR", "internal server error")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes.
// This should only be used in the handler/presentation layer.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request. Token failures are part of form-level flows
	// (activation, reset) rather than request authentication, so they map
	// to 400 and not 401.
	case "VALIDATION_ERROR", "INVALID_TOKEN":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "INVALID_CREDENTIALS", "ACCOUNT_PENDING", "INCORRECT_PASSWORD",
		"UNAUTHORIZED", "TOKEN_REVOKED":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN", "SELF_DELETION":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS":
		return http.StatusConflict

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts the user-facing error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
