package errs_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "0195cf2e")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "0195cf2e", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 0195cf2e", err.Error())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("driverId", "42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: driverId, ID is: 42 (cause: record not found)",
			err.Error())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("non_string_id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("phone")

		assert.Equal(t, "phone", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: phone", err.Error())
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("not an e164 number")
		err := errs.NewValueIsInvalidErrorWithCause("phone", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: phone (cause: not an e164 number)", err.Error())
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("activeOrders", -1, 0, 50)

		assert.Equal(t, "activeOrders", err.ParamName)
		assert.Equal(t, -1, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 50, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: -1 is activeOrders, min value is 0, max value is 50", err.Error())
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("counter underflow")
		err := errs.NewValueIsOutOfRangeErrorWithCause("activeOrders", -1, 0, 50, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -1 is activeOrders, min value is 0, max value is 50 (cause: counter underflow)",
			err.Error())
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("newlines_are_sanitized", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "ring\nbell", 0, 10)
		assert.Contains(t, err.Error(), "ring bell")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("warehouseId")

		assert.Equal(t, "warehouseId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: warehouseId", err.Error())
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("header missing")
		err := errs.NewValueIsRequiredErrorWithCause("warehouseId", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: warehouseId (cause: header missing)", err.Error())
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidError("version")

		assert.Equal(t, "version", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "version is invalid: version", err.Error())
		assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})

	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("stored version differs")
		err := errs.NewVersionIsInvalidErrorWithCause("version", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "version is invalid: version (cause: stored version differs)", err.Error())
		assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		sentinel error
		message  string
	}{
		{errs.ErrObjectNotFound, "object not found"},
		{errs.ErrValueIsInvalid, "value is invalid"},
		{errs.ErrValueIsOutOfRange, "value is out of range"},
		{errs.ErrValueIsRequired, "value is required"},
		{errs.ErrVersionIsInvalid, "version is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			require.Error(t, tt.sentinel)
			assert.Equal(t, tt.message, tt.sentinel.Error())
		})
	}
}
