package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// SweepStaleOrdersCommandHandler is the reaper behind the daily cleanup job.
// Each stale order is cancelled in its own transaction so one bad row cannot
// sink the whole sweep; failures are logged and skipped.
type SweepStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewSweepStaleOrdersCommandHandler creates a handler for the stale-order
// sweep.
func NewSweepStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) SweepStaleOrdersCommandHandler {
	return SweepStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle cancels every pending or assigned order created before the cutoff
// and returns how many it actually cancelled. The sweep only selects open
// orders, so running it twice back to back cancels nothing the second time.
func (h SweepStaleOrdersCommandHandler) Handle(ctx context.Context, cmd SweepStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	stale, err := h.fetchStale(ctx, cmd)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, o := range stale {
		if err := h.cancelOne(ctx, o); err != nil {
			h.logger.Warn("failed to cancel stale order, skipping",
				"order_id", o.ID().String(),
				"status", o.Status().String(),
				"error", err)
			continue
		}
		cancelled++
	}

	if cancelled > 0 {
		h.logger.Info("stale order sweep finished",
			"cutoff", cmd.Cutoff(),
			"cancelled", cancelled,
			"selected", len(stale))
	}

	return cancelled, nil
}

func (h SweepStaleOrdersCommandHandler) fetchStale(
	ctx context.Context,
	cmd SweepStaleOrdersCommand,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.OrderRepository().GetStale(ctx, cmd.Cutoff())
	if err != nil {
		return nil, err
	}

	return stale, uow.Commit(ctx)
}

func (h SweepStaleOrdersCommandHandler) cancelOne(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	from := o.Status()

	if err := o.Cancel(StaleOrderNote); err != nil {
		return err
	}

	// A concurrency conflict here means someone touched the order between the
	// sweep's read and this write; it is no longer stale bookkeeping we own.
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	entry, err := order.NewStatusHistoryEntry(
		o.ID(), from, o.Status(), order.SystemActor, time.Now(), StaleOrderNote,
	)
	if err != nil {
		return err
	}
	if err = uow.StatusHistoryRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
