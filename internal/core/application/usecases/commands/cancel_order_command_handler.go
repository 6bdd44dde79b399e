package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// CancelOrderCommandHandler withdraws an order. Cancellation of an assigned
// order does not touch the driver's load counter here; the reaper and manual
// flows both go through this handler, and Driver.GoOnline zeroes the counter
// at the start of the next shift.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation: pending and assigned orders cancel,
// every other state fails with the transition error carrying (from, to).
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !cmd.Actor().CanAccessWarehouse(o.WarehouseID()) {
		return ErrWarehouseAccessDenied
	}

	from := o.Status()

	if err = o.Cancel(cmd.Reason()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		if errors.Is(err, ports.ErrConcurrencyConflict) {
			return fmt.Errorf("%w: order %s", ErrConflictingAssignment, o.ID())
		}
		return err
	}

	entry, err := order.NewStatusHistoryEntry(
		o.ID(), from, o.Status(), cmd.Actor().UserID(), time.Now(), cmd.Reason(),
	)
	if err != nil {
		return err
	}
	if err = uow.StatusHistoryRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
