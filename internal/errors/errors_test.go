package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{nil, http.StatusOK},
		{ErrValidation, http.StatusBadRequest},
		{ErrInvalidToken, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrAccountPending, http.StatusUnauthorized},
		{ErrIncorrectPassword, http.StatusUnauthorized},
		{ErrTokenRevoked, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrSelfDeletion, http.StatusForbidden},
		{ErrUserNotFound, http.StatusNotFound},
		{ErrEmailExists, http.StatusConflict},
		{ErrStorage, http.StatusInternalServerError},
		{ErrInternal, http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := ToHTTPStatus(tt.err); got != tt.expected {
			t.Errorf("ToHTTPStatus(%v) = %d, want %d", tt.err, got, tt.expected)
		}
	}
}

func TestWrapError_PreservesIdentity(t *testing.T) {
	cause := errors.New("duplicate key")
	wrapped := WrapError(ErrEmailExists, cause)

	if !errors.Is(wrapped, ErrEmailExists) {
		t.Error("Expected wrapped error to match its domain error")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Expected wrapped error to unwrap to its cause")
	}
	if errors.Is(wrapped, ErrUserNotFound) {
		t.Error("Expected wrapped error to not match other domain errors")
	}

	if got := ToHTTPStatus(wrapped); got != http.StatusConflict {
		t.Errorf("Expected wrapped error to keep its status, got %d", got)
	}
}

func TestGetErrorMessage(t *testing.T) {
	cause := errors.New("pq: duplicate key value violates unique constraint")
	wrapped := WrapError(ErrEmailExists, cause)

	// The user-facing message must not leak the underlying cause.
	msg := GetErrorMessage(wrapped)
	if msg != ErrEmailExists.Message {
		t.Errorf("Expected %q, got %q", ErrEmailExists.Message, msg)
	}

	if got := GetErrorMessage(fmt.Errorf("plain")); got != "plain" {
		t.Errorf("Expected plain error text, got %q", got)
	}
	if got := GetErrorMessage(nil); got != "" {
		t.Errorf("Expected empty message for nil, got %q", got)
	}
}

func TestDomainError_ErrorString(t *testing.T) {
	if got := ErrUserNotFound.Error(); got != "user not found" {
		t.Errorf("Expected bare message, got %q", got)
	}

	wrapped := WrapError(ErrStorage, errors.New("connection refused"))
	if got := wrapped.Error(); got != "storage operation failed: connection refused" {
		t.Errorf("Expected message with cause, got %q", got)
	}
}
