package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrArchiveOrderCommandIsNotConstructed = errors.New(
	"ArchiveOrderCommand must be created via NewArchiveOrderCommand constructor",
)

// ArchiveOrderCommand hides a finished order from active listings without
// deleting it. Only terminal orders can be archived.
type ArchiveOrderCommand struct {
	orderID kernel.UUID
	actor   Actor

	guard guard.ConstructorGuard
}

// NewArchiveOrderCommand creates an archival command.
func NewArchiveOrderCommand(orderID kernel.UUID, actor Actor) (ArchiveOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
	); err != nil {
		return ArchiveOrderCommand{}, err
	}

	return ArchiveOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ArchiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrArchiveOrderCommandIsNotConstructed)
}

// OrderID returns the order to archive.
func (c ArchiveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting user's authorization context.
func (c ArchiveOrderCommand) Actor() Actor {
	return c.actor
}
