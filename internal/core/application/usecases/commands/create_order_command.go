package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new delivery order in pending status.
// Orders enter the system either through spreadsheet import or manual entry;
// both paths converge on this command.
type CreateOrderCommand struct {
	orderID     kernel.UUID
	warehouseID kernel.UUID
	notes       string
	actor       Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command registering a new order for the
// given warehouse. Notes may be empty.
func NewCreateOrderCommand(orderID, warehouseID kernel.UUID, notes string, actor Actor) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		warehouseID.Validate(),
		actor.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:     orderID,
		warehouseID: warehouseID,
		notes:       notes,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// WarehouseID returns the warehouse responsible for the order.
func (c CreateOrderCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// Notes returns the free-text remarks for the order.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// Actor returns the acting user's authorization context.
func (c CreateOrderCommand) Actor() Actor {
	return c.actor
}
