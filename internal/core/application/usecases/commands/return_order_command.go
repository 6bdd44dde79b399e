package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReturnOrderCommandIsNotConstructed = errors.New(
	"ReturnOrderCommand must be created via NewReturnOrderCommand constructor",
)

// ReturnOrderCommand sends an order back to the warehouse, either from
// out_for_delivery (handoff refused at the door) or from delivered
// (post-delivery return, subject to the return window).
type ReturnOrderCommand struct {
	orderID kernel.UUID
	reason  string
	actor   Actor

	guard guard.ConstructorGuard
}

// NewReturnOrderCommand creates a return command.
func NewReturnOrderCommand(orderID kernel.UUID, reason string, actor Actor) (ReturnOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
	); err != nil {
		return ReturnOrderCommand{}, err
	}

	return ReturnOrderCommand{
		orderID: orderID,
		reason:  reason,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnOrderCommand) Validate() error {
	return c.guard.Validate(ErrReturnOrderCommandIsNotConstructed)
}

// OrderID returns the order to return.
func (c ReturnOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the return reason.
func (c ReturnOrderCommand) Reason() string {
	return c.reason
}

// Actor returns the acting user's authorization context.
func (c ReturnOrderCommand) Actor() Actor {
	return c.actor
}
