package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchOperationFromString(t *testing.T) {
	tests := []struct {
		input string
		want  commands.BatchOperation
	}{
		{"assign", commands.BatchOperationAssign},
		{"cancel", commands.BatchOperationCancel},
		{"delete", commands.BatchOperationDelete},
		{"return", commands.BatchOperationReturn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			op, err := commands.BatchOperationFromString(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, op)
			assert.Equal(t, tt.input, op.String())
		})
	}

	t.Run("unknown_operation", func(t *testing.T) {
		_, err := commands.BatchOperationFromString("restock")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewBatchCommand_Success(t *testing.T) {
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	actor := testDispatcher(t)

	cmd, err := commands.NewBatchCommand(commands.BatchOperationCancel, ids, nil, "recall", actor)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, commands.BatchOperationCancel, cmd.Operation())
	assert.Equal(t, ids, cmd.OrderIDs())
	assert.Nil(t, cmd.DriverID())
	assert.Equal(t, "recall", cmd.Reason())
}

func TestNewBatchCommand_DuplicateIDsAreKept(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewBatchCommand(
		commands.BatchOperationCancel, []kernel.UUID{id, id}, nil, "", testDispatcher(t))

	require.NoError(t, err)
	assert.Len(t, cmd.OrderIDs(), 2)
}

func TestNewBatchCommand_AssignRequiresDriver(t *testing.T) {
	ids := []kernel.UUID{kernel.NewUUID()}

	t.Run("missing_driver", func(t *testing.T) {
		_, err := commands.NewBatchCommand(commands.BatchOperationAssign, ids, nil, "", testDispatcher(t))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("with_driver", func(t *testing.T) {
		driverID := kernel.NewUUID()

		cmd, err := commands.NewBatchCommand(
			commands.BatchOperationAssign, ids, &driverID, "", testDispatcher(t))

		require.NoError(t, err)
		require.NotNil(t, cmd.DriverID())
		assert.True(t, cmd.DriverID().IsEqual(driverID))
	})
}

func TestNewBatchCommand_InvalidArguments(t *testing.T) {
	t.Run("empty_id_list", func(t *testing.T) {
		_, err := commands.NewBatchCommand(
			commands.BatchOperationCancel, nil, nil, "", testDispatcher(t))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_id_in_list", func(t *testing.T) {
		_, err := commands.NewBatchCommand(
			commands.BatchOperationCancel, []kernel.UUID{{}}, nil, "", testDispatcher(t))

		require.Error(t, err)
	})

	t.Run("unknown_operation", func(t *testing.T) {
		_, err := commands.NewBatchCommand(
			commands.BatchOperationUnknown, []kernel.UUID{kernel.NewUUID()}, nil, "", testDispatcher(t))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unconstructed_actor", func(t *testing.T) {
		_, err := commands.NewBatchCommand(
			commands.BatchOperationCancel, []kernel.UUID{kernel.NewUUID()}, nil, "", commands.Actor{})

		require.Error(t, err)
	})
}

func TestBatchCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.BatchCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrBatchCommandIsNotConstructed)
}
