package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand withdraws an order before completion.
// Legal only from pending and assigned; the transition table rejects the rest.
type CancelOrderCommand struct {
	orderID kernel.UUID
	reason  string
	actor   Actor

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a cancellation command. The reason is
// recorded on the order and in the audit entry; it may be empty.
func NewCancelOrderCommand(orderID kernel.UUID, reason string, actor Actor) (CancelOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		reason:  reason,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the cancellation reason.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// Actor returns the acting user's authorization context.
func (c CancelOrderCommand) Actor() Actor {
	return c.actor
}
