package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/ports"
)

// ArchiveOrderCommandHandler flags terminal orders as archived. Archival is
// not a status change, so no audit entry is written.
type ArchiveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewArchiveOrderCommandHandler creates a handler for order archival.
func NewArchiveOrderCommandHandler(uowFactory OrderUoWFactory) ArchiveOrderCommandHandler {
	return ArchiveOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle archives the order. Non-terminal orders fail with
// order.ErrOrderIsNotTerminal.
func (h ArchiveOrderCommandHandler) Handle(ctx context.Context, cmd ArchiveOrderCommand) error {
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

	if err = o.Archive(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		if errors.Is(err, ports.ErrConcurrencyConflict) {
			return fmt.Errorf("%w: order %s", ErrConflictingAssignment, o.ID())
		}
		return err
	}

	return uow.Commit(ctx)
}
