package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/schedule"
)

// ScheduleRepository persists day schedules. At most one schedule exists per
// calendar day and a stored schedule is never changed.
type ScheduleRepository interface {
	// CountByDate reports how many schedules exist for the day of date (0 or 1).
	CountByDate(ctx context.Context, date time.Time) (int64, error)

	// Add stores a schedule with its slots.
	// Returns errs.ObjectAlreadyExistsError when the day is already scheduled,
	// including when a concurrent run won the race.
	Add(ctx context.Context, daySchedule *schedule.DaySchedule) error

	// Get loads the schedule of the day of date. A non-nil courierID restricts
	// the result to that courier's slots.
	// Returns errs.ObjectNotFoundError when the day has no schedule.
	Get(ctx context.Context, date time.Time, courierID *int64) (*schedule.DaySchedule, error)
}
