package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnassignOrderCommand_Success(t *testing.T) {
	orderID := kernel.NewUUID()
	actor := testDispatcher(t)

	cmd, err := commands.NewUnassignOrderCommand(orderID, actor)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, actor, cmd.Actor())
}

func TestNewUnassignOrderCommand_InvalidArguments(t *testing.T) {
	t.Run("zero_order_id", func(t *testing.T) {
		_, err := commands.NewUnassignOrderCommand(kernel.UUID{}, testDispatcher(t))
		require.Error(t, err)
	})

	t.Run("unconstructed_actor", func(t *testing.T) {
		_, err := commands.NewUnassignOrderCommand(kernel.NewUUID(), commands.Actor{})
		require.Error(t, err)
	})
}

func TestUnassignOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.UnassignOrderCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrUnassignOrderCommandIsNotConstructed)
}
