package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// UnassignOrderCommandHandler releases an order's driver binding.
// Only legal while the order is assigned; the same conditional update used by
// assignment protects against racing writers.
type UnassignOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewUnassignOrderCommandHandler creates a handler for unassignment.
func NewUnassignOrderCommandHandler(uowFactory UoWFactory) UnassignOrderCommandHandler {
	return UnassignOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle reverts the order to pending, clears driver and assignedAt, releases
// the driver's active-order slot, and appends the audit entry, all in one
// transaction.
func (h UnassignOrderCommandHandler) Handle(ctx context.Context, cmd UnassignOrderCommand) error {
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
	driverRepo := uow.DriverRepository()
	historyRepo := uow.StatusHistoryRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !cmd.Actor().CanAccessWarehouse(o.WarehouseID()) {
		return ErrWarehouseAccessDenied
	}

	from := o.Status()
	releasedDriverID := o.Driver()

	if err = o.Unassign(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		if errors.Is(err, ports.ErrConcurrencyConflict) {
			return fmt.Errorf("%w: order %s", ErrConflictingAssignment, o.ID())
		}
		return err
	}

	if releasedDriverID != nil {
		released, getErr := driverRepo.Get(ctx, *releasedDriverID)
		if getErr != nil {
			return getErr
		}
		if releaseErr := released.ReleaseOrder(); releaseErr != nil {
			if !errors.Is(releaseErr, driver.ErrNoActiveOrders) {
				return releaseErr
			}
		} else if err = driverRepo.Update(ctx, released); err != nil {
			return err
		}
	}

	entry, err := order.NewStatusHistoryEntry(
		o.ID(), from, o.Status(), cmd.Actor().UserID(), time.Now(), "",
	)
	if err != nil {
		return err
	}
	if err = historyRepo.Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
