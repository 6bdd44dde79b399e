package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/commands"
)

// defaultShiftReminderSchedule runs at the top of every hour, matching the
// hour bucket the dedup key is scoped to.
const defaultShiftReminderSchedule = "0 * * * *"

// ShiftReminderJob runs the hourly pass nudging drivers who have been online
// past the shift threshold. The dedup store inside the handler keeps
// overlapping runs from double-notifying; the schedule just provides cadence.
type ShiftReminderJob struct {
	handler   commands.RemindLongShiftsCommandHandler
	threshold time.Duration
	dedupTTL  time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewShiftReminderJob creates the shift-reminder job. An empty schedule
// falls back to the hourly default.
func NewShiftReminderJob(
	handler commands.RemindLongShiftsCommandHandler,
	threshold time.Duration,
	dedupTTL time.Duration,
	schedule string,
	logger *slog.Logger,
) *ShiftReminderJob {
	if schedule == "" {
		schedule = defaultShiftReminderSchedule
	}
	return &ShiftReminderJob{
		handler:   handler,
		threshold: threshold,
		dedupTTL:  dedupTTL,
		schedule:  schedule,
		cron:      cron.New(),
		logger:    logger.With("component", "shift_reminder_job"),
	}
}

// Start schedules the reminder pass.
func (j *ShiftReminderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewRemindLongShiftsCommand(j.threshold, j.dedupTTL, time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Shift-reminder pass misconfigured", "error", err)
			return
		}

		notified, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Shift-reminder pass failed", "error", err)
			return
		}
		if notified > 0 {
			j.logger.InfoContext(ctx, "Shift-reminder pass finished", "notified", notified)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shift-reminder job started", "schedule", j.schedule)
	return nil
}

// Stop stops the shift-reminder job.
func (j *ShiftReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shift-reminder job stopped")
}
