// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrInvalidInput marks a request rejected before any tier runs,
	// e.g. an empty description or a negative amount. Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderUnavailable marks an external provider (embedding,
	// vector index, LLM) that could not be reached or answered with a
	// transport-level failure.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrClassificationUnavailable is surfaced to the caller only when
	// every tier has failed. It is distinct from an "Other" result: the
	// engine never silently presents a wrong category as if confident.
	ErrClassificationUnavailable = errors.New("classification unavailable")

	// ErrNotFound indicates a missing catalog record.
	ErrNotFound = errors.New("not found")

	// ErrRateLimit indicates that a provider rate limit has been exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// InvalidInputError wraps ErrInvalidInput with a field-level message.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// NewInvalidInput creates an input validation error for a named field.
func NewInvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
