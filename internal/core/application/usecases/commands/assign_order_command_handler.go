package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// ErrConflictingAssignment is returned when a concurrent assignment committed
// first. The order row no longer matches the state this handler read, so the
// caller should refresh and retry rather than assume the binding succeeded.
var ErrConflictingAssignment = errors.New("order was taken by a concurrent assignment")

// AssignOrderCommandHandler binds exactly one driver to an order at a time.
//
// The exclusivity guarantee does not come from locking: the order update is a
// conditional write ("UPDATE ... WHERE id = ? AND version = ?"), so of two
// racing assignments exactly one commits and the loser surfaces
// ErrConflictingAssignment instead of silently overwriting.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignOrderCommandHandler creates a handler for driver assignment.
// Requires a UoWFactory so the order update, driver bookkeeping, and audit
// entry commit together.
func NewAssignOrderCommandHandler(uowFactory UoWFactory) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment.
//
// Preconditions: the order exists and is pending or assigned, the actor's
// warehouse scope covers it, and the driver exists and is available. On
// success the order is assigned, assignedAt is stamped on the first
// assignment, driver load counters are adjusted, and an audit entry is
// appended for the status change.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
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

	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	from := o.Status()
	previousDriverID := o.Driver()
	sameDriver := previousDriverID != nil && previousDriverID.IsEqual(d.ID())

	now := time.Now()
	if err = o.Assign(d.ID(), now); err != nil {
		return err
	}

	// Re-assigning to the current driver must not grow the load counter;
	// the driver already carries this order's slot.
	if !sameDriver {
		if err = d.TakeOrder(); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		if errors.Is(err, ports.ErrConcurrencyConflict) {
			return fmt.Errorf("%w: order %s", ErrConflictingAssignment, o.ID())
		}
		return err
	}

	if !sameDriver {
		if err = driverRepo.Update(ctx, d); err != nil {
			return err
		}
	}

	// Reassignment releases the previous driver's slot.
	if previousDriverID != nil && !sameDriver {
		if err = h.releaseDriver(ctx, driverRepo, *previousDriverID); err != nil {
			return err
		}
	}

	// Only a real status change is a transition; reassignment keeps the order
	// in assigned and writes no history entry.
	if from != o.Status() {
		entry, entryErr := order.NewStatusHistoryEntry(
			o.ID(), from, o.Status(), cmd.Actor().UserID(), now, "",
		)
		if entryErr != nil {
			return entryErr
		}
		if err = historyRepo.Append(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// releaseDriver decrements the previous driver's active-order count after a
// reassignment. A counter already at zero is stale bookkeeping, not a reason
// to fail the assignment.
func (h AssignOrderCommandHandler) releaseDriver(
	ctx context.Context,
	driverRepo ports.DriverRepository,
	driverID kernel.UUID,
) error {
	previous, err := driverRepo.Get(ctx, driverID)
	if err != nil {
		return err
	}

	if err = previous.ReleaseOrder(); err != nil {
		if errors.Is(err, driver.ErrNoActiveOrders) {
			return nil
		}
		return err
	}

	return driverRepo.Update(ctx, previous)
}
