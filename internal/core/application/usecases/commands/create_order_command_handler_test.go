package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, warehouseID, "leave at reception", testDispatcher(t))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	created := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.True(t, orderID.IsEqual(created.ID()))
	assert.Equal(t, order.Pending, created.Status())
	assert.Nil(t, created.Driver())
	assert.Equal(t, "leave at reception", created.Notes())
	assert.Equal(t, 1, created.Version())
}

func TestCreateOrderCommandHandler_Handle_OutOfScopeWarehouse(t *testing.T) {
	ctx := t.Context()

	actor := testDispatcher(t, kernel.NewUUID())
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "", actor)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrWarehouseAccessDenied)
	factory.AssertNotCalled(t, "Create")
}
