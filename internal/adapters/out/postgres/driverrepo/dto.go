// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence.
package driverrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverDTO represents the database structure for persisting driver
// aggregates.
type DriverDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	Phone          string
	IsAvailable    bool `gorm:"index"`
	ShiftStartedAt *time.Time
	ActiveOrders   int
}

// TableName overrides GORM's default naming to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(aggregate *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		Phone:          aggregate.Phone(),
		IsAvailable:    aggregate.IsAvailable(),
		ShiftStartedAt: aggregate.ShiftStartedAt(),
		ActiveOrders:   aggregate.ActiveOrders(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(
		id,
		dto.Name,
		dto.Phone,
		dto.IsAvailable,
		dto.ShiftStartedAt,
		dto.ActiveOrders,
	)
}
