// Package ports defines the contracts between the dispatch core and its
// infrastructure: repositories, the unit of work, the notification channel,
// and the deduplication store. These interfaces enable dependency inversion
// and testability.
package ports

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrConcurrencyConflict is returned by conditional updates when the stored
// row no longer matches the version the aggregate was loaded with, i.e. a
// concurrent writer committed first. Callers translate it into their own
// conflict semantics (e.g. a lost assignment race).
var ErrConcurrencyConflict = errors.New("concurrent modification detected")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes conditionally: the write only succeeds when the
	// stored version equals the aggregate's loaded version ("UPDATE ... WHERE
	// id = ? AND version = ?"). On success the aggregate's version is bumped.
	// Returns ErrConcurrencyConflict when a concurrent writer got there first.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetStale retrieves orders sitting in pending or assigned status created
	// before the cutoff. Used by the stale-order sweep; already-terminal
	// orders are never selected, which makes the sweep idempotent.
	GetStale(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// Delete removes an order row permanently. This is the one audit-skipping
	// operation and is reserved for elevated batch callers.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Delete(ctx context.Context, id kernel.UUID) error
}
