// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its snake_case string so rows stay readable in psql and
// stable across enum reordering. Version backs the conditional update used
// for assignment exclusivity.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID  `gorm:"type:uuid;index"`
	DriverID    *uuid.UUID `gorm:"type:uuid;index"`
	Status      string     `gorm:"type:varchar(32);index"`
	IsArchived  bool
	Version     int
	CreatedAt   time.Time `gorm:"index"`
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	Notes       string
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		WarehouseID: aggregate.WarehouseID().Bytes(),
		DriverID:    driverID,
		Status:      aggregate.Status().String(),
		IsArchived:  aggregate.IsArchived(),
		Version:     aggregate.Version(),
		CreatedAt:   aggregate.CreatedAt(),
		AssignedAt:  aggregate.AssignedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		Notes:       aggregate.Notes(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, warehouseID, driverID,
		status,
		dto.IsArchived,
		dto.Version,
		dto.CreatedAt,
		dto.AssignedAt, dto.PickedUpAt, dto.DeliveredAt,
		dto.Notes,
	)
}
