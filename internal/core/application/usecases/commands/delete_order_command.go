package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes an order record outright, bypassing the
// lifecycle and the audit trail. Reserved for admins cleaning up bad data.
type DeleteOrderCommand struct {
	orderID kernel.UUID
	actor   Actor

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a deletion command.
func NewDeleteOrderCommand(orderID kernel.UUID, actor Actor) (DeleteOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
	); err != nil {
		return DeleteOrderCommand{}, err
	}

	return DeleteOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// OrderID returns the order to delete.
func (c DeleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting user's authorization context.
func (c DeleteOrderCommand) Actor() Actor {
	return c.actor
}
