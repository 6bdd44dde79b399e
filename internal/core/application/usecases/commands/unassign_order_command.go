package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUnassignOrderCommandIsNotConstructed = errors.New(
	"UnassignOrderCommand must be created via NewUnassignOrderCommand constructor",
)

// UnassignOrderCommand reverts an assigned order back into the dispatch pool,
// clearing the driver binding and the assignment timestamp.
type UnassignOrderCommand struct {
	orderID kernel.UUID
	actor   Actor

	guard guard.ConstructorGuard
}

// NewUnassignOrderCommand creates a command releasing orderID's driver on
// behalf of actor.
func NewUnassignOrderCommand(orderID kernel.UUID, actor Actor) (UnassignOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
	); err != nil {
		return UnassignOrderCommand{}, err
	}

	return UnassignOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UnassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnassignOrderCommandIsNotConstructed)
}

// OrderID returns the order to release.
func (c UnassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting user's authorization context.
func (c UnassignOrderCommand) Actor() Actor {
	return c.actor
}
