package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ReturnOrderCommandHandler processes warehouse returns. Post-delivery
// returns additionally pass through the return policy, which bounds how long
// after delivery a return is still accepted.
type ReturnOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	returnPolicy services.ReturnPolicy
}

// NewReturnOrderCommandHandler creates a handler for order returns.
func NewReturnOrderCommandHandler(
	uowFactory OrderUoWFactory,
	returnPolicy services.ReturnPolicy,
) ReturnOrderCommandHandler {
	return ReturnOrderCommandHandler{
		uowFactory:   uowFactory,
		returnPolicy: returnPolicy,
	}
}

// Handle processes the return.
func (h ReturnOrderCommandHandler) Handle(ctx context.Context, cmd ReturnOrderCommand) error {
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

	now := time.Now()
	if err = h.returnPolicy.CheckReturn(o, now); err != nil {
		return err
	}

	from := o.Status()

	if err = o.Return(cmd.Reason()); err != nil {
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
