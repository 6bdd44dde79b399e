package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's audit trail from the history
// table, oldest entry first.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for the order-history
// query.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns the order's status changes in occurrence order. An order
// with no recorded changes yields an empty slice, not an error; existence
// checks belong to the command side.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			changed_by,
			occurred_at,
			notes
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			fromStatus string
			toStatus   string
			changedBy  string
			occurredAt time.Time
			notes      string
		)

		if err = rows.Scan(&fromStatus, &toStatus, &changedBy, &occurredAt, &notes); err != nil {
			return nil, err
		}

		entries = append(entries, GetOrderHistoryQueryResponse{
			From:       fromStatus,
			To:         toStatus,
			ChangedBy:  changedBy,
			OccurredAt: occurredAt,
			Notes:      notes,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
