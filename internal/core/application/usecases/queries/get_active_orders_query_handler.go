package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// GetActiveOrdersQueryHandler reads the in-flight order list straight from
// the database, skipping aggregate hydration.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for the active-orders
// query.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns every non-terminal, non-archived order, oldest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			warehouse_id,
			driver_id,
			status,
			created_at,
			assigned_at
		FROM orders
		WHERE status IN (?, ?, ?, ?, ?)
		  AND is_archived = false
		ORDER BY created_at, id
	`,
		order.Pending.String(),
		order.Assigned.String(),
		order.PickedUp.String(),
		order.InTransit.String(),
		order.OutForDelivery.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         uuid.UUID
			warehouse  uuid.UUID
			driverID   *uuid.UUID
			status     string
			createdAt  time.Time
			assignedAt sql.NullTime
		)

		if err = rows.Scan(&id, &warehouse, &driverID, &status, &createdAt, &assignedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		warehouseID, idErr := kernel.UUIDFromBytes(warehouse[:])
		if idErr != nil {
			return nil, idErr
		}

		resp := GetActiveOrdersQueryResponse{
			ID:          orderID,
			WarehouseID: warehouseID,
			Status:      status,
			CreatedAt:   createdAt,
		}
		if driverID != nil {
			d, idErr := kernel.UUIDFromBytes(driverID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.DriverID = &d
		}
		if assignedAt.Valid {
			resp.AssignedAt = &assignedAt.Time
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
