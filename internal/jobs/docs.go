// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. StaleOrderJob - Cancels orders stuck in pending or assigned past the
// configured age (daily by default)
// 2. ShiftReminderJob - Nudges drivers who have been online past the shift
// threshold (hourly by default)
//
// Schedules are standard cron expressions supplied through Settings; empty
// values fall back to the defaults above.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sweepHandler, remindHandler, settings, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs are best-effort: a failed run is logged and the next scheduled
// run tries again. Per-item failures inside a run are handled by the command
// handlers themselves, so one bad order or one slow push never aborts a pass.
// Failed job starts will stop any already running jobs.
package jobs
