package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// AssignOrdersHandler runs the assignment of one day.
type AssignOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.AssignOrdersCommand) (commands.AssignOrdersResult, error)
}

// DailyAssignmentJob schedules the current day on a cron spec evaluated in
// the service time zone.
type DailyAssignmentJob struct {
	handler  AssignOrdersHandler
	spec     string
	location *time.Location
	now      func() time.Time
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDailyAssignmentJob creates the job. spec is a six-field cron expression
// (seconds first); each run is bounded by timeout unless it is zero.
func NewDailyAssignmentJob(
	handler AssignOrdersHandler,
	spec string,
	location *time.Location,
	now func() time.Time,
	timeout time.Duration,
	logger *slog.Logger,
) *DailyAssignmentJob {
	return &DailyAssignmentJob{
		handler:  handler,
		spec:     spec,
		location: location,
		now:      now,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		logger:   logger.With("component", "daily_assignment_job"),
	}
}

// Start registers the job with its schedule. An invalid spec is returned
// and nothing is started.
func (j *DailyAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Daily assignment job started", "spec", j.spec, "location", j.location.String())
	return nil
}

// Stop waits for a running assignment to finish.
func (j *DailyAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Daily assignment job stopped")
}

// Run assigns today's orders once. A day that is already scheduled or has
// nothing to schedule is not a failure.
func (j *DailyAssignmentJob) Run(ctx context.Context) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	day := kernel.StartOfDay(j.now().In(j.location))
	logger := j.logger.With("date", day.Format(time.DateOnly))

	cmd, err := commands.NewAssignOrdersCommand(day)
	if err != nil {
		logger.ErrorContext(ctx, "Daily assignment command is invalid", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrAlreadyScheduled), errors.Is(err, commands.ErrNothingToSchedule):
		logger.InfoContext(ctx, "Daily assignment skipped", "reason", err.Error())
	case err != nil:
		logger.ErrorContext(ctx, "Daily assignment failed", "error", err)
	default:
		logger.InfoContext(ctx, "Daily assignment done",
			"placed", result.Schedule.OrderCount(),
			"unassigned", len(result.Unassigned),
		)
	}
}
