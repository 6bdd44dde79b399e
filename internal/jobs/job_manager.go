package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
)

// Settings carries the operational parameters the scheduled jobs pass to
// their command handlers on each run.
// Empty schedules fall back to the per-job defaults (daily sweep, hourly
// reminders).
type Settings struct {
	StaleOrderAge          time.Duration
	StaleOrderSchedule     string
	ShiftReminderThreshold time.Duration
	ShiftReminderTTL       time.Duration
	ShiftReminderSchedule  string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleOrderJob    *StaleOrderJob
	shiftReminderJob *ShiftReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	sweepHandler commands.SweepStaleOrdersCommandHandler,
	remindHandler commands.RemindLongShiftsCommandHandler,
	settings Settings,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleOrderJob: NewStaleOrderJob(
			sweepHandler,
			settings.StaleOrderAge,
			settings.StaleOrderSchedule,
			logger,
		),
		shiftReminderJob: NewShiftReminderJob(
			remindHandler,
			settings.ShiftReminderThreshold,
			settings.ShiftReminderTTL,
			settings.ShiftReminderSchedule,
			logger,
		),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleOrderJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale-order job: %w", err)
	}

	if err := jm.shiftReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.staleOrderJob.Stop()
		return fmt.Errorf("failed to start shift-reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.shiftReminderJob.Stop()
	jm.staleOrderJob.Stop()
}
