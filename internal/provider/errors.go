package provider

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for provider calls.
type ErrorCategory string

const (
	// ErrorTimeout: the provider took too long to respond.
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData: the provider returned invalid or malformed data.
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication: credential or permission failure.
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorOutage: the provider is unreachable or erroring.
	ErrorOutage ErrorCategory = "outage"

	// ErrorNotFound: the requested record does not exist.
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited: too many requests.
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorRejected: the provider rejected the request as invalid
	// (4xx-class). Never retried.
	ErrorRejected ErrorCategory = "rejected"

	// ErrorInternal: unexpected internal failure.
	ErrorInternal ErrorCategory = "internal"
)

// Error wraps provider failures with a normalized category so callers can
// decide on retries without inspecting transport details.
type Error struct {
	Category   ErrorCategory
	Provider   string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.Provider, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.Provider, e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a normalized provider error. Only transient transport
// categories are marked retryable; rejections and missing records are
// terminal.
func NewError(category ErrorCategory, providerName, message string, underlying error) *Error {
	retryable := category == ErrorTimeout ||
		category == ErrorOutage ||
		category == ErrorRateLimited

	return &Error{
		Category:   category,
		Provider:   providerName,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable reports whether err is worth a single bounded retry.
func IsRetryable(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// Category extracts the normalized category, defaulting to internal.
func Category(err error) ErrorCategory {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}
