package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrBatchCommandIsNotConstructed = errors.New(
	"BatchCommand must be created via NewBatchCommand constructor",
)

// BatchOperation selects which single-order command a batch applies.
type BatchOperation int

const (
	BatchOperationUnknown BatchOperation = iota
	BatchOperationAssign
	BatchOperationCancel
	BatchOperationDelete
	BatchOperationReturn
)

var batchOperationStrings = map[BatchOperation]string{
	BatchOperationAssign: "assign",
	BatchOperationCancel: "cancel",
	BatchOperationDelete: "delete",
	BatchOperationReturn: "return",
}

// String returns the wire name of the operation.
func (op BatchOperation) String() string {
	return batchOperationStrings[op]
}

// BatchOperationFromString parses a wire name into a BatchOperation.
func BatchOperationFromString(s string) (BatchOperation, error) {
	for op, name := range batchOperationStrings {
		if name == s {
			return op, nil
		}
	}
	return BatchOperationUnknown, errs.NewValueIsInvalidError("operation")
}

// BatchCommand applies one operation to a list of orders. The list is taken
// as given: duplicates are processed as separate items, and the input order
// is preserved in the result's error records.
type BatchCommand struct {
	operation BatchOperation
	orderIDs  []kernel.UUID
	driverID  *kernel.UUID
	reason    string
	actor     Actor

	guard guard.ConstructorGuard
}

// NewBatchCommand creates a batch command. driverID is required for assign
// and ignored for every other operation.
func NewBatchCommand(
	operation BatchOperation,
	orderIDs []kernel.UUID,
	driverID *kernel.UUID,
	reason string,
	actor Actor,
) (BatchCommand, error) {
	if err := actor.Validate(); err != nil {
		return BatchCommand{}, err
	}

	if operation < BatchOperationAssign || operation > BatchOperationReturn {
		return BatchCommand{}, errs.NewValueIsInvalidError("operation")
	}

	if len(orderIDs) == 0 {
		return BatchCommand{}, errs.NewValueIsRequiredError("orderIDs")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return BatchCommand{}, err
		}
	}

	if operation == BatchOperationAssign {
		if driverID == nil {
			return BatchCommand{}, errs.NewValueIsRequiredError("driverID")
		}
		if err := driverID.Validate(); err != nil {
			return BatchCommand{}, err
		}
	}

	return BatchCommand{
		operation: operation,
		orderIDs:  orderIDs,
		driverID:  driverID,
		reason:    reason,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BatchCommand) Validate() error {
	return c.guard.Validate(ErrBatchCommandIsNotConstructed)
}

// Operation returns the operation to apply.
func (c BatchCommand) Operation() BatchOperation {
	return c.operation
}

// OrderIDs returns the target order list as submitted.
func (c BatchCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// DriverID returns the driver for assign batches, nil otherwise.
func (c BatchCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// Reason returns the note forwarded to cancel and return items.
func (c BatchCommand) Reason() string {
	return c.reason
}

// Actor returns the acting user's authorization context.
func (c BatchCommand) Actor() Actor {
	return c.actor
}
