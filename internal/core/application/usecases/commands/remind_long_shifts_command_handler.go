package commands

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
)

// RemindLongShiftsCommandHandler runs the hourly shift-reminder pass. The
// dedup store, not the scheduler, is the throttle: the key is claimed before
// the notification is sent, so overlapping runs on separate instances
// cannot double-notify a driver within the same hour bucket.
type RemindLongShiftsCommandHandler struct {
	driverRepoFactory DriverRepoFactory
	dedupStore        ports.DedupStore
	notifier          ports.Notifier
	logger            *slog.Logger
}

// NewRemindLongShiftsCommandHandler creates a handler for shift reminders.
func NewRemindLongShiftsCommandHandler(
	driverRepoFactory DriverRepoFactory,
	dedupStore ports.DedupStore,
	notifier ports.Notifier,
	logger *slog.Logger,
) RemindLongShiftsCommandHandler {
	return RemindLongShiftsCommandHandler{
		driverRepoFactory: driverRepoFactory,
		dedupStore:        dedupStore,
		notifier:          notifier,
		logger:            logger,
	}
}

// Handle notifies every available driver whose shift has run past the
// threshold and returns how many notifications were sent. Send failures are
// logged and not retried; the claimed dedup key suppresses the reminder
// until the next hour bucket.
func (h RemindLongShiftsCommandHandler) Handle(ctx context.Context, cmd RemindLongShiftsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	drivers, err := h.driverRepoFactory.DriverRepository().GetAllAvailable(ctx)
	if err != nil {
		return 0, err
	}

	notified := 0
	for _, d := range drivers {
		if d.OnlineDuration(cmd.AsOf()) < cmd.ShiftThreshold() {
			continue
		}

		if h.remindOne(ctx, cmd, d) {
			notified++
		}
	}

	return notified, nil
}

func (h RemindLongShiftsCommandHandler) remindOne(
	ctx context.Context,
	cmd RemindLongShiftsCommand,
	d *driver.Driver,
) bool {
	claimed, err := h.dedupStore.SetIfAbsent(ctx, cmd.DedupKey(d.ID()), cmd.DedupTTL())
	if err != nil {
		h.logger.Warn("dedup store unavailable, skipping driver",
			"driver_id", d.ID().String(),
			"error", err)
		return false
	}
	if !claimed {
		return false
	}

	message := fmt.Sprintf(
		"You have been online for over %.0f hours. Consider taking a break.",
		d.OnlineDuration(cmd.AsOf()).Hours(),
	)
	if err = h.notifier.Notify(ctx, d.ID(), message); err != nil {
		h.logger.Warn("failed to send shift reminder",
			"driver_id", d.ID().String(),
			"error", err)
		return false
	}

	return true
}
