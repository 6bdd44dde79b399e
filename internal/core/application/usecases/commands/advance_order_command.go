package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand moves an order along the delivery leg of the lifecycle:
// picked_up, in_transit, out_for_delivery, delivered, or rejected. The
// assignment and return legs have their own commands.
type AdvanceOrderCommand struct {
	orderID kernel.UUID
	target  order.Status
	reason  string
	actor   Actor

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a progress command. target must be one of
// the delivery-leg statuses; whether the step is legal from the order's
// current status is the transition table's call, not the constructor's.
func NewAdvanceOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	reason string,
	actor Actor,
) (AdvanceOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	switch target {
	case order.PickedUp, order.InTransit, order.OutForDelivery,
		order.Delivered, order.Rejected:
	default:
		return AdvanceOrderCommand{}, errs.NewValueIsInvalidError("target")
	}

	return AdvanceOrderCommand{
		orderID: orderID,
		target:  target,
		reason:  reason,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status to advance to.
func (c AdvanceOrderCommand) Target() order.Status {
	return c.target
}

// Reason returns the note attached to the step, used for rejections.
func (c AdvanceOrderCommand) Reason() string {
	return c.reason
}

// Actor returns the acting user's authorization context.
func (c AdvanceOrderCommand) Actor() Actor {
	return c.actor
}
