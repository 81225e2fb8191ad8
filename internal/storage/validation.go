package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrInvalidUser   = errors.New("invalid user id")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidPeriod = errors.New("invalid period")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateUserID ensures a user id is set.
func validateUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidUser, userID)
	}
	return nil
}

// validateAmount ensures a stored amount is strictly positive. The positivity
// contract is enforced upstream at validation time; this is the last line
// before a row is written.
func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	return nil
}
