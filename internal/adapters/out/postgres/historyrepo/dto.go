// Package historyrepo persists the append-only order audit log.
package historyrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// StatusHistoryDTO represents one audit trail row. Rows are only ever
// inserted; the surrogate ID breaks ties between entries sharing an
// occurrence timestamp.
type StatusHistoryDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string    `gorm:"type:varchar(32)"`
	ToStatus   string    `gorm:"type:varchar(32)"`
	ChangedBy  string
	OccurredAt time.Time
	Notes      string
}

// TableName overrides GORM's default naming to use "order_status_history".
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(entry order.StatusHistoryEntry) StatusHistoryDTO {
	return StatusHistoryDTO{
		OrderID:    entry.OrderID().Bytes(),
		FromStatus: entry.From().String(),
		ToStatus:   entry.To().String(),
		ChangedBy:  entry.ChangedBy(),
		OccurredAt: entry.OccurredAt(),
		Notes:      entry.Notes(),
	}
}

func toDomain(dto StatusHistoryDTO) (order.StatusHistoryEntry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusHistoryEntry{}, err
	}

	from, err := order.StatusFromString(dto.FromStatus)
	if err != nil {
		return order.StatusHistoryEntry{}, err
	}

	to, err := order.StatusFromString(dto.ToStatus)
	if err != nil {
		return order.StatusHistoryEntry{}, err
	}

	return order.NewStatusHistoryEntry(orderID, from, to, dto.ChangedBy, dto.OccurredAt, dto.Notes)
}
