// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound indicates a mention handle did not resolve to a directory user.
	ErrUserNotFound = errors.New("user not found in directory")

	// ErrRoomNotFound indicates a room handle did not resolve via the directory.
	ErrRoomNotFound = errors.New("room not found in directory")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// ValidationError represents command argument validation failures.
// These are reported to the user before any gateway call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// GatewayError represents a transport-level failure or non-success response
// from the directory or ledger service.
type GatewayError struct {
	Gateway    string
	URL        string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s gateway error (url=%s, status=%d): %v", e.Gateway, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s gateway error (url=%s): %v", e.Gateway, e.URL, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError creates a new gateway error.
func NewGatewayError(gateway, url string, statusCode int, err error) *GatewayError {
	return &GatewayError{
		Gateway:    gateway,
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}
