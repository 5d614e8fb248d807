package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_UnwrapsToSentinel(t *testing.T) {
	cause := fmt.Errorf("%w: version mismatch", apperrors.ErrPersistence)
	err := apperrors.NewAppError(500, "failed to update account", cause)

	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Equal(t, "failed to update account: persistence failed: version mismatch", err.Error())

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.Code)
}

func TestAppError_WithoutCause(t *testing.T) {
	err := apperrors.NewAppError(404, "missing", nil)
	assert.Equal(t, "missing", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
