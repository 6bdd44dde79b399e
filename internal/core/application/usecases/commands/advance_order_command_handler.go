package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// AdvanceOrderCommandHandler steps an order through the delivery leg on a
// driver's behalf. Every step is a status change, so every success appends an
// audit entry.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderCommandHandler creates a handler for delivery progress.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies one delivery step. An illegal step fails with the
// transition error carrying (from, to).
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
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
	now := time.Now()

	if err = h.applyStep(o, cmd, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		if errors.Is(err, ports.ErrConcurrencyConflict) {
			return fmt.Errorf("%w: order %s", ErrConflictingAssignment, o.ID())
		}
		return err
	}

	entry, err := order.NewStatusHistoryEntry(
		o.ID(), from, o.Status(), cmd.Actor().UserID(), now, cmd.Reason(),
	)
	if err != nil {
		return err
	}
	if err = uow.StatusHistoryRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h AdvanceOrderCommandHandler) applyStep(o *order.Order, cmd AdvanceOrderCommand, now time.Time) error {
	switch cmd.Target() {
	case order.PickedUp:
		return o.MarkPickedUp(now)
	case order.InTransit:
		return o.MarkInTransit()
	case order.OutForDelivery:
		return o.MarkOutForDelivery()
	case order.Delivered:
		return o.MarkDelivered(now)
	case order.Rejected:
		return o.Reject(cmd.Reason())
	default:
		// Unreachable: the command constructor only admits delivery-leg statuses.
		return order.NewInvalidTransitionError(o.Status(), cmd.Target())
	}
}
