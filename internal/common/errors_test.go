package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	inner := errors.New("disk full")
	err := NewUserError("не удалось сохранить транзакцию", inner)

	assert.Contains(t, err.Error(), "не удалось сохранить транзакцию")
	assert.ErrorIs(t, err, inner)

	var userErr *UserError
	assert.True(t, errors.As(err, &userErr))
	assert.Equal(t, "не удалось сохранить транзакцию", userErr.UserMessage)
}

func TestIsUserCorrectable(t *testing.T) {
	assert.True(t, IsUserCorrectable(ErrNoAmount))
	assert.True(t, IsUserCorrectable(fmt.Errorf("wrapped: %w", ErrAmountNotPositive)))
	assert.True(t, IsUserCorrectable(ErrAmountTooLarge))

	assert.False(t, IsUserCorrectable(ErrNoPending))
	assert.False(t, IsUserCorrectable(ErrStaleSession))
	assert.False(t, IsUserCorrectable(errors.New("boom")))
}
