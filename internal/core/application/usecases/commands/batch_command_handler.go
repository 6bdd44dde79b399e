package commands

import (
	"context"

	"golang.org/x/sync/errgroup"

	"dispatch/internal/core/domain/model/kernel"
)

// DefaultBatchConcurrency bounds how many batch items run at once when the
// caller does not configure a limit.
const DefaultBatchConcurrency = 8

// BatchItemError records one failed item of a batch.
type BatchItemError struct {
	OrderID kernel.UUID
	Err     error
}

// BatchResult summarizes a batch run. Processed counts successful items, so
// Processed plus len(Errors) always equals the submitted item count.
type BatchResult struct {
	Processed int
	Errors    []BatchItemError
}

// BatchCommandHandler fans a batch out over the single-order handlers. Items
// are independent: each runs in its own transaction, and one item's failure
// is recorded without touching its neighbors.
type BatchCommandHandler struct {
	assignHandler AssignOrderCommandHandler
	cancelHandler CancelOrderCommandHandler
	deleteHandler DeleteOrderCommandHandler
	returnHandler ReturnOrderCommandHandler
	concurrency   int
}

// NewBatchCommandHandler creates a batch handler over the per-order
// handlers. concurrency bounds parallel items; values below one fall back to
// DefaultBatchConcurrency.
func NewBatchCommandHandler(
	assignHandler AssignOrderCommandHandler,
	cancelHandler CancelOrderCommandHandler,
	deleteHandler DeleteOrderCommandHandler,
	returnHandler ReturnOrderCommandHandler,
	concurrency int,
) BatchCommandHandler {
	if concurrency < 1 {
		concurrency = DefaultBatchConcurrency
	}
	return BatchCommandHandler{
		assignHandler: assignHandler,
		cancelHandler: cancelHandler,
		deleteHandler: deleteHandler,
		returnHandler: returnHandler,
		concurrency:   concurrency,
	}
}

// Handle runs the batch to completion and reports per-item outcomes. The
// only whole-batch failures are an invalid command and the delete
// authorization gate, both of which fire before any item is attempted.
func (h BatchCommandHandler) Handle(ctx context.Context, cmd BatchCommand) (BatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchResult{}, err
	}

	// Destructive batches are gated up front: a forbidden delete processes
	// zero items rather than failing item by item.
	if cmd.Operation() == BatchOperationDelete && cmd.Actor().Role() != RoleAdmin {
		return BatchResult{}, ErrForbidden
	}

	orderIDs := cmd.OrderIDs()
	itemErrs := make([]error, len(orderIDs))

	g := &errgroup.Group{}
	g.SetLimit(h.concurrency)

	for i, orderID := range orderIDs {
		g.Go(func() error {
			itemErrs[i] = h.applyItem(ctx, cmd, orderID)
			return nil
		})
	}

	// Workers never return errors; failures live in itemErrs.
	_ = g.Wait()

	result := BatchResult{}
	for i, err := range itemErrs {
		if err != nil {
			result.Errors = append(result.Errors, BatchItemError{OrderID: orderIDs[i], Err: err})
			continue
		}
		result.Processed++
	}

	return result, nil
}

func (h BatchCommandHandler) applyItem(ctx context.Context, cmd BatchCommand, orderID kernel.UUID) error {
	switch cmd.Operation() {
	case BatchOperationAssign:
		itemCmd, err := NewAssignOrderCommand(orderID, *cmd.DriverID(), cmd.Actor())
		if err != nil {
			return err
		}
		return h.assignHandler.Handle(ctx, itemCmd)
	case BatchOperationCancel:
		itemCmd, err := NewCancelOrderCommand(orderID, cmd.Reason(), cmd.Actor())
		if err != nil {
			return err
		}
		return h.cancelHandler.Handle(ctx, itemCmd)
	case BatchOperationDelete:
		itemCmd, err := NewDeleteOrderCommand(orderID, cmd.Actor())
		if err != nil {
			return err
		}
		return h.deleteHandler.Handle(ctx, itemCmd)
	case BatchOperationReturn:
		itemCmd, err := NewReturnOrderCommand(orderID, cmd.Reason(), cmd.Actor())
		if err != nil {
			return err
		}
		return h.returnHandler.Handle(ctx, itemCmd)
	default:
		// Unreachable: the command constructor rejects unknown operations.
		return ErrBatchCommandIsNotConstructed
	}
}
