// Package http exposes the dispatch engine over a JSON REST API.
// It translates wire requests into application commands and queries and maps
// application errors onto HTTP status codes.
package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Actor headers set by the authentication gateway in front of this service.
const (
	HeaderUserID     = "X-User-ID"
	HeaderUserRole   = "X-User-Role"
	HeaderWarehouses = "X-Warehouse-IDs"

	// HeaderJobToken authenticates manual job triggers.
	HeaderJobToken = "X-Job-Token"
)

// Handlers bundles the command and query handlers the server routes to.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	AssignOrder     commands.AssignOrderCommandHandler
	UnassignOrder   commands.UnassignOrderCommandHandler
	AdvanceOrder    commands.AdvanceOrderCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	ReturnOrder     commands.ReturnOrderCommandHandler
	DeleteOrder     commands.DeleteOrderCommandHandler
	ArchiveOrder    commands.ArchiveOrderCommandHandler
	Batch           commands.BatchCommandHandler
	SweepStale      commands.SweepStaleOrdersCommandHandler
	RemindShifts    commands.RemindLongShiftsCommandHandler
	GetActiveOrders queries.GetActiveOrdersQueryHandler
	GetOrderHistory queries.GetOrderHistoryQueryHandler
}

// Settings carries the operational configuration the server needs beyond its
// handlers: the job-trigger secret and the parameters passed to manually
// triggered job runs.
type Settings struct {
	JobToken               string
	StaleOrderAge          time.Duration
	ShiftReminderThreshold time.Duration
	ShiftReminderTTL       time.Duration
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	settings Settings
}

// NewServer creates a new HTTP server over the given handlers.
func NewServer(handlers Handlers, settings Settings) *Server {
	return &Server{handlers: handlers, settings: settings}
}

// NewEcho builds the echo instance with all routes registered.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/batch", s.BatchOrders)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.POST("/orders/:id/assign", s.AssignOrder)
	api.POST("/orders/:id/unassign", s.UnassignOrder)
	api.POST("/orders/:id/advance", s.AdvanceOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/return", s.ReturnOrder)
	api.POST("/orders/:id/archive", s.ArchiveOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)

	jobs := api.Group("/jobs", s.requireJobToken)
	jobs.POST("/stale-order-sweep", s.TriggerStaleOrderSweep)
	jobs.POST("/shift-reminders", s.TriggerShiftReminders)

	return e
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	warehouseID, err := kernel.UUIDFromString(body.WarehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse_id")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, warehouseID, body.Notes, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.String()})
}

// AssignOrder handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body AssignRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver_id")
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, driverID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.AssignOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnassignOrder handles POST /api/v1/orders/:id/unassign.
func (s *Server) UnassignOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewUnassignOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.UnassignOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance - moves an order one
// step along the delivery leg.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body AdvanceRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(body.Target)
	if err != nil {
		return badRequest(ctx, "Invalid target status")
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, target, body.Reason, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.AdvanceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body ReasonRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, body.Reason, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReturnOrder handles POST /api/v1/orders/:id/return.
func (s *Server) ReturnOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body ReasonRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReturnOrderCommand(orderID, body.Reason, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.ReturnOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ArchiveOrder handles POST /api/v1/orders/:id/archive.
func (s *Server) ArchiveOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewArchiveOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.ArchiveOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:id - admin only.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BatchOrders handles POST /api/v1/orders/batch - applies one operation to a
// list of orders and reports per-item outcomes.
func (s *Server) BatchOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body BatchRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	operation, err := commands.BatchOperationFromString(body.Operation)
	if err != nil {
		return badRequest(ctx, "Invalid operation")
	}

	orderIDs := make([]kernel.UUID, 0, len(body.OrderIDs))
	for _, raw := range body.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid order id: "+raw)
		}
		orderIDs = append(orderIDs, id)
	}

	var driverID *kernel.UUID
	if body.DriverID != nil {
		id, err := kernel.UUIDFromString(*body.DriverID)
		if err != nil {
			return badRequest(ctx, "Invalid driver_id")
		}
		driverID = &id
	}

	cmd, err := commands.NewBatchCommand(operation, orderIDs, driverID, body.Reason, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.Batch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := BatchResponse{
		Processed: result.Processed,
		Errors:    make([]BatchItemError, len(result.Errors)),
	}
	for i, itemErr := range result.Errors {
		response.Errors[i] = BatchItemError{
			OrderID: itemErr.OrderID.String(),
			Error:   itemErr.Err.Error(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.handlers.GetActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		item := ActiveOrder{
			ID:          o.ID.String(),
			WarehouseID: o.WarehouseID.String(),
			Status:      o.Status,
			CreatedAt:   o.CreatedAt,
			AssignedAt:  o.AssignedAt,
		}
		if o.DriverID != nil {
			raw := o.DriverID.String()
			item.DriverID = &raw
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.handlers.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		response[i] = HistoryEntry{
			From:       e.From,
			To:         e.To,
			ChangedBy:  e.ChangedBy,
			OccurredAt: e.OccurredAt,
			Notes:      e.Notes,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TriggerStaleOrderSweep handles POST /api/v1/jobs/stale-order-sweep. Runs
// the same sweep the daily schedule runs and reports the cancelled count.
func (s *Server) TriggerStaleOrderSweep(ctx echo.Context) error {
	cmd, err := commands.NewSweepStaleOrdersCommand(s.settings.StaleOrderAge, time.Now())
	if err != nil {
		return writeError(ctx, err)
	}

	cancelled, err := s.handlers.SweepStale.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SweepResponse{Cancelled: cancelled})
}

// TriggerShiftReminders handles POST /api/v1/jobs/shift-reminders.
func (s *Server) TriggerShiftReminders(ctx echo.Context) error {
	cmd, err := commands.NewRemindLongShiftsCommand(
		s.settings.ShiftReminderThreshold,
		s.settings.ShiftReminderTTL,
		time.Now(),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	notified, err := s.handlers.RemindShifts.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RemindResponse{Notified: notified})
}

// requireJobToken guards the job-trigger endpoints with the shared secret.
func (s *Server) requireJobToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token := ctx.Request().Header.Get(HeaderJobToken)
		if s.settings.JobToken == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(s.settings.JobToken)) != 1 {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "Invalid job token",
			})
		}
		return next(ctx)
	}
}

// actorFromRequest builds the authorization context from the identity headers
// set by the gateway.
func actorFromRequest(ctx echo.Context) (commands.Actor, error) {
	userID := ctx.Request().Header.Get(HeaderUserID)
	role := commands.Role(ctx.Request().Header.Get(HeaderUserRole))

	var warehouses []kernel.UUID
	if raw := ctx.Request().Header.Get(HeaderWarehouses); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := kernel.UUIDFromString(strings.TrimSpace(part))
			if err != nil {
				return commands.Actor{}, errs.NewValueIsInvalidErrorWithCause("warehouses", err)
			}
			warehouses = append(warehouses, id)
		}
	}

	return commands.NewActor(userID, role, warehouses)
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps an application error onto the HTTP status taxonomy. Errors
// that match nothing in the taxonomy are treated as transient storage
// trouble so callers know a retry is reasonable.
func writeError(ctx echo.Context, err error) error {
	var invalidTransition *order.InvalidTransitionError

	status := http.StatusServiceUnavailable
	message := "Temporarily unavailable, retry later"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.As(err, &invalidTransition),
		errors.Is(err, order.ErrOrderIsNotTerminal),
		errors.Is(err, services.ErrReturnWindowClosed),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, commands.ErrForbidden),
		errors.Is(err, commands.ErrWarehouseAccessDenied):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, commands.ErrConflictingAssignment),
		errors.Is(err, ports.ErrConcurrencyConflict),
		errors.Is(err, driver.ErrDriverUnavailable):
		status = http.StatusConflict
		message = err.Error()
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}
