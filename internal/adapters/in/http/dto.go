package http

import "time"

// Wire types for the dispatch HTTP API.

// Error is the uniform error envelope returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the request body for creating an order.
type NewOrder struct {
	WarehouseID string `json:"warehouse_id"`
	Notes       string `json:"notes,omitempty"`
}

// OrderCreated is the response body for a successful order creation.
type OrderCreated struct {
	ID string `json:"id"`
}

// AssignRequest selects the driver for an assignment.
type AssignRequest struct {
	DriverID string `json:"driver_id"`
}

// AdvanceRequest names the delivery-leg status to move an order to.
type AdvanceRequest struct {
	Target string `json:"target"`
	Reason string `json:"reason,omitempty"`
}

// ReasonRequest carries the free-text reason for cancel and return.
type ReasonRequest struct {
	Reason string `json:"reason,omitempty"`
}

// BatchRequest applies one operation to a list of orders.
type BatchRequest struct {
	Operation string   `json:"operation"`
	OrderIDs  []string `json:"order_ids"`
	DriverID  *string  `json:"driver_id,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

// BatchItemError reports one failed batch item.
type BatchItemError struct {
	OrderID string `json:"order_id"`
	Error   string `json:"error"`
}

// BatchResponse summarizes a batch run. Processed plus the error count
// always equals the number of submitted items.
type BatchResponse struct {
	Processed int              `json:"processed"`
	Errors    []BatchItemError `json:"errors"`
}

// ActiveOrder is one in-flight order on the dispatcher dashboard.
type ActiveOrder struct {
	ID          string     `json:"id"`
	WarehouseID string     `json:"warehouse_id"`
	DriverID    *string    `json:"driver_id,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
}

// HistoryEntry is one recorded status change of an order.
type HistoryEntry struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	ChangedBy  string    `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
	Notes      string    `json:"notes,omitempty"`
}

// SweepResponse reports how many stale orders a sweep run cancelled.
type SweepResponse struct {
	Cancelled int `json:"cancelled"`
}

// RemindResponse reports how many shift reminders a run sent.
type RemindResponse struct {
	Notified int `json:"notified"`
}
