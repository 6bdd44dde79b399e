package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand requests the exclusive binding of a driver to an order.
// Assignment is allowed while the order is pending or still assigned
// (reassignment); once the package is picked up the binding is fixed.
type AssignOrderCommand struct {
	orderID  kernel.UUID
	driverID kernel.UUID
	actor    Actor

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command binding driverID to orderID on
// behalf of actor. All identifiers must be valid.
func NewAssignOrderCommand(orderID, driverID kernel.UUID, actor Actor) (AssignOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		driverID.Validate(),
		actor.Validate(),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID:  orderID,
		driverID: driverID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order to bind.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the driver to bind.
func (c AssignOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Actor returns the acting user's authorization context.
func (c AssignOrderCommand) Actor() Actor {
	return c.actor
}
