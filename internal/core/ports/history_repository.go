package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// StatusHistoryRepository is the append-only persistence contract for the
// order audit log. There are deliberately no update or delete methods; a
// written entry is immutable.
type StatusHistoryRepository interface {
	// Append persists a new history entry.
	Append(ctx context.Context, entry order.StatusHistoryEntry) error

	// ListByOrder retrieves all entries for an order ordered by occurrence
	// time, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusHistoryEntry, error)
}
