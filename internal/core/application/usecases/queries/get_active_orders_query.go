// Package queries contains read-only operations for retrieving system state.
// Implements the Query pattern for the read side of the CQRS architecture.
// Query handlers bypass the domain model and read projections straight from
// the database.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders still in flight: anything that
// has not reached a terminal status. Feeds the dispatcher dashboard.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query retrieving in-flight orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one in-flight order row.
type GetActiveOrdersQueryResponse struct {
	ID          kernel.UUID
	WarehouseID kernel.UUID
	DriverID    *kernel.UUID
	Status      string
	CreatedAt   time.Time
	AssignedAt  *time.Time
}
