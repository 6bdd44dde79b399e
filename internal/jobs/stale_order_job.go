package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/commands"
)

// defaultStaleOrderSchedule runs the sweep once a day, during the quiet hours.
const defaultStaleOrderSchedule = "0 3 * * *"

// StaleOrderJob runs the daily sweep cancelling orders that sat in pending
// or assigned longer than the configured age.
type StaleOrderJob struct {
	handler  commands.SweepStaleOrdersCommandHandler
	staleAge time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleOrderJob creates the stale-order sweep job. An empty schedule
// falls back to the daily default.
func NewStaleOrderJob(
	handler commands.SweepStaleOrdersCommandHandler,
	staleAge time.Duration,
	schedule string,
	logger *slog.Logger,
) *StaleOrderJob {
	if schedule == "" {
		schedule = defaultStaleOrderSchedule
	}
	return &StaleOrderJob{
		handler:  handler,
		staleAge: staleAge,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "stale_order_job"),
	}
}

// Start schedules the sweep.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewSweepStaleOrdersCommand(j.staleAge, time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale-order sweep misconfigured", "error", err)
			return
		}

		cancelled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale-order sweep failed", "error", err)
			return
		}
		j.logger.InfoContext(ctx, "Stale-order sweep finished", "cancelled", cancelled)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale-order job started", "schedule", j.schedule)
	return nil
}

// Stop stops the stale-order job.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale-order job stopped")
}
