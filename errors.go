package postbot

import (
	"errors"
	"fmt"
	"time"
)

// Error represents a postbot library error with categorization.
type Error struct {
	// Code is a machine-readable error code
	Code string

	// Message is a human-readable error message
	Message string

	// Wait is the provider-mandated delay before the operation may be
	// retried. Zero for errors that carry no backoff signal.
	Wait time.Duration

	// Err is the underlying error (if any)
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// RetryAfter returns the provider-mandated wait, satisfying the
// retry.BackoffSignal contract. Zero means no signal was given.
func (e *Error) RetryAfter() time.Duration {
	return e.Wait
}

// Error codes for postbot operations.
const (
	// ErrCodeNoData indicates no data was found (e.g., a month sheet
	// that has not been created yet).
	ErrCodeNoData = "NO_DATA"

	// ErrCodeValidation indicates validation failed.
	ErrCodeValidation = "VALIDATION_ERROR"

	// ErrCodeConfiguration indicates invalid configuration.
	ErrCodeConfiguration = "CONFIGURATION_ERROR"

	// ErrCodeStore indicates a tabular store operation failed.
	ErrCodeStore = "STORE_ERROR"

	// ErrCodeGeneration indicates content generation failed.
	ErrCodeGeneration = "GENERATION_ERROR"

	// ErrCodeDelivery indicates channel delivery failed.
	ErrCodeDelivery = "DELIVERY_ERROR"

	// ErrCodeRateLimited indicates the completion service rejected the
	// request due to rate limiting. Recoverable within the retry budget.
	ErrCodeRateLimited = "RATE_LIMITED"

	// ErrCodeFloodControl indicates the channel rejected the send and
	// signaled a mandatory wait before further sends are accepted.
	ErrCodeFloodControl = "FLOOD_CONTROL"
)

// Common errors.
var (
	// ErrNoData is returned when a query returns no results.
	// This is not necessarily an error condition in all cases.
	ErrNoData = &Error{
		Code:    ErrCodeNoData,
		Message: "no data found",
	}
)

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithCause creates a new Error wrapping an underlying error.
func NewErrorWithCause(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// RateLimited wraps a completion-service rate-limit rejection.
// The fixed retry delay applies; the service gives no explicit wait.
func RateLimited(cause error) *Error {
	return &Error{
		Code:    ErrCodeRateLimited,
		Message: "completion service rate limit",
		Err:     cause,
	}
}

// FloodWait wraps a channel flood-control rejection carrying the
// mandatory wait the channel signaled.
func FloodWait(wait time.Duration, cause error) *Error {
	return &Error{
		Code:    ErrCodeFloodControl,
		Message: fmt.Sprintf("channel flood control, wait %v", wait),
		Wait:    wait,
		Err:     cause,
	}
}

// IsNoData checks if an error is ErrNoData.
func IsNoData(err error) bool {
	var pbErr *Error
	if errors.As(err, &pbErr) {
		return pbErr.Code == ErrCodeNoData
	}
	return errors.Is(err, ErrNoData)
}

// IsFloodControl checks if an error carries a flood-control signal.
func IsFloodControl(err error) bool {
	var pbErr *Error
	return errors.As(err, &pbErr) && pbErr.Code == ErrCodeFloodControl
}

// IsRateLimited checks if an error is a rate-limit rejection.
func IsRateLimited(err error) bool {
	var pbErr *Error
	return errors.As(err, &pbErr) && pbErr.Code == ErrCodeRateLimited
}
