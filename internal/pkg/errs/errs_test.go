package errs_test

import (
	"errors"
	"testing"

	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "ord_123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "ord_123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: ord_123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "ord_123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: ord_123 (cause: database connection failed)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("unknown vehicle type")
		err := errs.NewValueIsInvalidErrorWithCause("vehicle", cause)

		assert.Equal(t, "value is invalid: vehicle (cause: unknown vehicle type)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("sanitizes newlines", func(t *testing.T) {
		cause := errors.New("line one\nline two")
		err := errs.NewValueIsInvalidErrorWithCause("field", cause)

		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "line one line two")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("recipient.phone")

	assert.Equal(t, "value is required: recipient.phone", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	cause := errors.New("missing required field")
	withCause := errs.NewValueIsRequiredErrorWithCause("recipient.phone", cause)
	assert.Equal(t, "value is required: recipient.phone (cause: missing required field)", withCause.Error())
}

func TestVersionConflictError(t *testing.T) {
	err := errs.NewVersionConflictError("orderId", "ord_42")

	assert.Equal(t, "version conflict: param is: orderId, ID is: ord_42", err.Error())
	require.ErrorIs(t, err, errs.ErrVersionConflict)
}

func TestSentinelMessages(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "version conflict", errs.ErrVersionConflict.Error())
}
