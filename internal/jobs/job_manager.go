package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Config holds the schedule of background jobs. An empty AssignmentSpec
// disables the daily assignment job.
type Config struct {
	AssignmentSpec    string
	AssignmentTimeout time.Duration
	Location          *time.Location
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dailyAssignmentJob *DailyAssignmentJob
	logger             *slog.Logger
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(assignHandler AssignOrdersHandler, cfg Config, now func() time.Time, logger *slog.Logger) *JobManager {
	jm := &JobManager{logger: logger}
	if cfg.AssignmentSpec != "" {
		jm.dailyAssignmentJob = NewDailyAssignmentJob(
			assignHandler,
			cfg.AssignmentSpec,
			cfg.Location,
			now,
			cfg.AssignmentTimeout,
			logger,
		)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.dailyAssignmentJob == nil {
		jm.logger.Info("Daily assignment job disabled")
		return nil
	}

	if err := jm.dailyAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start daily assignment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.dailyAssignmentJob != nil {
		jm.dailyAssignmentJob.Stop()
	}
}
