// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Parsing and validation errors. Both are user-correctable: the caller
	// should re-prompt rather than abort the conversation.
	ErrNoAmount          = errors.New("could not parse amount")
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrAmountTooLarge    = errors.New("amount too large")

	// Classification errors.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// Conversation errors.
	ErrNoPending    = errors.New("no pending transaction")
	ErrStaleSession = errors.New("stale conversation session")

	// Database errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsUserCorrectable reports whether the user can fix the error by re-entering
// their input, as opposed to a system failure.
func IsUserCorrectable(err error) bool {
	return errors.Is(err, ErrNoAmount) ||
		errors.Is(err, ErrAmountNotPositive) ||
		errors.Is(err, ErrAmountTooLarge)
}
