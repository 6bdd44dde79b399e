package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func advanceUoW(t *testing.T, testOrder *order.Order) (*MockOrderUoWFactory, *MockOrderRepository, *MockHistoryRepository) {
	t.Helper()

	orderRepo := new(MockOrderRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)

	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StatusHistoryRepository").Return(historyRepo)
	orderRepo.On("Get", mock.Anything, testOrder.ID()).Return(testOrder, nil)
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	historyRepo.On("Append", mock.Anything, mock.AnythingOfType("order.StatusHistoryEntry")).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	return factory, orderRepo, historyRepo
}

func TestAdvanceOrderCommandHandler_Handle_FullDeliveryLeg(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	testOrder := assignedOrder(t, kernel.NewUUID(), driverID)
	factory, _, historyRepo := advanceUoW(t, testOrder)
	handler := commands.NewAdvanceOrderCommandHandler(factory)

	actor, err := commands.NewActor(driverID.String(), commands.RoleDriver, nil)
	require.NoError(t, err)

	steps := []order.Status{
		order.PickedUp,
		order.InTransit,
		order.OutForDelivery,
		order.Delivered,
	}
	for _, target := range steps {
		cmd, cmdErr := commands.NewAdvanceOrderCommand(testOrder.ID(), target, "", actor)
		require.NoError(t, cmdErr)
		require.NoError(t, handler.Handle(ctx, cmd))
		assert.Equal(t, target, testOrder.Status())
	}

	assert.NotNil(t, testOrder.PickedUpAt())
	assert.NotNil(t, testOrder.DeliveredAt())
	historyRepo.AssertNumberOfCalls(t, "Append", len(steps))
}

func TestAdvanceOrderCommandHandler_Handle_SkippingStepRejected(t *testing.T) {
	ctx := t.Context()

	testOrder := assignedOrder(t, kernel.NewUUID(), kernel.NewUUID())
	factory, orderRepo, _ := advanceUoW(t, testOrder)
	handler := commands.NewAdvanceOrderCommandHandler(factory)

	// assigned straight to delivered skips three steps
	cmd, err := commands.NewAdvanceOrderCommand(testOrder.ID(), order.Delivered, "", testDispatcher(t))
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)

	var transitionErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, order.Assigned, transitionErr.From)
	assert.Equal(t, order.Delivered, transitionErr.To)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdvanceOrderCommandHandler_Handle_RejectFromPickedUp(t *testing.T) {
	ctx := t.Context()

	testOrder := assignedOrder(t, kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, testOrder.MarkPickedUp(time.Now()))

	factory, _, historyRepo := advanceUoW(t, testOrder)
	handler := commands.NewAdvanceOrderCommandHandler(factory)

	cmd, err := commands.NewAdvanceOrderCommand(testOrder.ID(), order.Rejected, "pharmacy recall", testDispatcher(t))
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))
	assert.Equal(t, order.Rejected, testOrder.Status())

	entry := historyRepo.Calls[0].Arguments[1].(order.StatusHistoryEntry)
	assert.Equal(t, "pharmacy recall", entry.Notes())
}

func TestNewAdvanceOrderCommand_RejectsNonDeliveryTargets(t *testing.T) {
	actor := testDispatcher(t)

	for _, target := range []order.Status{
		order.Pending,
		order.Assigned,
		order.Cancelled,
		order.Returned,
		order.Failed,
	} {
		_, err := commands.NewAdvanceOrderCommand(kernel.NewUUID(), target, "", actor)
		require.Error(t, err, target.String())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}
