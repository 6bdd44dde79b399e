package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newBatchHandler wires a batch handler over the real per-order handlers,
// with concurrency pinned to one so mock call order stays deterministic.
func newBatchHandler(orderUoWFactory commands.OrderUoWFactory, uowFactory commands.UoWFactory) commands.BatchCommandHandler {
	return commands.NewBatchCommandHandler(
		commands.NewAssignOrderCommandHandler(uowFactory),
		commands.NewCancelOrderCommandHandler(orderUoWFactory),
		commands.NewDeleteOrderCommandHandler(orderUoWFactory),
		commands.NewReturnOrderCommandHandler(orderUoWFactory, services.NewReturnPolicy(0)),
		1,
	)
}

func TestBatchCommandHandler_Handle_CancelIsolatesFailures(t *testing.T) {
	ctx := t.Context()

	warehouseID := kernel.NewUUID()
	order1 := pendingOrder(t, warehouseID)
	order2 := deliveredOrder(t, warehouseID) // cannot be cancelled
	order3 := pendingOrder(t, warehouseID)

	orderRepo := new(MockOrderRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StatusHistoryRepository").Return(historyRepo)
	orderRepo.On("Get", ctx, order1.ID()).Return(order1, nil)
	orderRepo.On("Get", ctx, order2.ID()).Return(order2, nil)
	orderRepo.On("Get", ctx, order3.ID()).Return(order3, nil)
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	historyRepo.On("Append", ctx, mock.AnythingOfType("order.StatusHistoryEntry")).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	cmd, err := commands.NewBatchCommand(
		commands.BatchOperationCancel,
		[]kernel.UUID{order1.ID(), order2.ID(), order3.ID()},
		nil,
		"warehouse closing",
		testDispatcher(t),
	)
	require.NoError(t, err)

	handler := newBatchHandler(factory, new(MockUoWFactory))
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	require.Len(t, result.Errors, 1)
	assert.True(t, order2.ID().IsEqual(result.Errors[0].OrderID))

	var transitionErr *order.InvalidTransitionError
	require.ErrorAs(t, result.Errors[0].Err, &transitionErr)
	assert.Equal(t, order.Delivered, transitionErr.From)
	assert.Equal(t, order.Cancelled, transitionErr.To)

	assert.Equal(t, order.Cancelled, order1.Status())
	assert.Equal(t, order.Delivered, order2.Status())
	assert.Equal(t, order.Cancelled, order3.Status())
}

func TestBatchCommandHandler_Handle_DuplicateIDsProcessedIndependently(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StatusHistoryRepository").Return(historyRepo)
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil)
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	historyRepo.On("Append", ctx, mock.AnythingOfType("order.StatusHistoryEntry")).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	cmd, err := commands.NewBatchCommand(
		commands.BatchOperationCancel,
		[]kernel.UUID{testOrder.ID(), testOrder.ID()},
		nil,
		"",
		testDispatcher(t),
	)
	require.NoError(t, err)

	handler := newBatchHandler(factory, new(MockUoWFactory))
	result, err := handler.Handle(ctx, cmd)

	// The first occurrence cancels the order; the second sees it already
	// cancelled and records its own failure.
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, result.Errors, 1)
	assert.True(t, testOrder.ID().IsEqual(result.Errors[0].OrderID))
}

func TestBatchCommandHandler_Handle_DeleteForbiddenBeforeAnyItem(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewBatchCommand(
		commands.BatchOperationDelete,
		[]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()},
		nil,
		"",
		testDispatcher(t),
	)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)

	handler := newBatchHandler(factory, new(MockUoWFactory))
	result, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrForbidden)
	assert.Equal(t, 0, result.Processed)
	assert.Empty(t, result.Errors)
	factory.AssertNotCalled(t, "Create")
}

func TestBatchCommandHandler_Handle_AdminDelete(t *testing.T) {
	ctx := t.Context()

	order1 := pendingOrder(t, kernel.NewUUID())
	order2 := deliveredOrder(t, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, order1.ID()).Return(order1, nil)
	orderRepo.On("Get", ctx, order2.ID()).Return(order2, nil)
	orderRepo.On("Delete", ctx, order1.ID()).Return(nil)
	orderRepo.On("Delete", ctx, order2.ID()).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	cmd, err := commands.NewBatchCommand(
		commands.BatchOperationDelete,
		[]kernel.UUID{order1.ID(), order2.ID()},
		nil,
		"",
		testAdmin(t),
	)
	require.NoError(t, err)

	handler := newBatchHandler(factory, new(MockUoWFactory))
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Empty(t, result.Errors)
	orderRepo.AssertNumberOfCalls(t, "Delete", 2)
}

func TestBatchCommandHandler_Handle_AssignRequiresDriver(t *testing.T) {
	_, err := commands.NewBatchCommand(
		commands.BatchOperationAssign,
		[]kernel.UUID{kernel.NewUUID()},
		nil,
		"",
		testDispatcher(t),
	)

	require.Error(t, err)
}
