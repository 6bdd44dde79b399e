package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeleteOrderCommand_Success(t *testing.T) {
	orderID := kernel.NewUUID()
	actor := testAdmin(t)

	cmd, err := commands.NewDeleteOrderCommand(orderID, actor)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, actor, cmd.Actor())
}

func TestNewDeleteOrderCommand_RoleIsNotCheckedAtConstruction(t *testing.T) {
	// The admin gate lives in the handler so the refusal reaches the caller
	// as a handler error, not a constructor error.
	_, err := commands.NewDeleteOrderCommand(kernel.NewUUID(), testDispatcher(t))

	require.NoError(t, err)
}

func TestNewDeleteOrderCommand_InvalidArguments(t *testing.T) {
	t.Run("zero_order_id", func(t *testing.T) {
		_, err := commands.NewDeleteOrderCommand(kernel.UUID{}, testAdmin(t))
		require.Error(t, err)
	})

	t.Run("unconstructed_actor", func(t *testing.T) {
		_, err := commands.NewDeleteOrderCommand(kernel.NewUUID(), commands.Actor{})
		require.Error(t, err)
	})
}

func TestDeleteOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.DeleteOrderCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDeleteOrderCommandIsNotConstructed)
}
