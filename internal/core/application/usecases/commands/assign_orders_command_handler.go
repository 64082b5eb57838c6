package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/schedule"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrAlreadyScheduled is returned when the day already has a schedule,
	// either found upfront or lost to a concurrent run at insert time.
	ErrAlreadyScheduled = errors.New("day is already scheduled")
	// ErrNothingToSchedule is returned when there are no couriers or no
	// unassigned orders for the day. No schedule is stored.
	ErrNothingToSchedule = errors.New("nothing to schedule")
)

// AssignOrdersResult is the outcome of a successful run.
type AssignOrdersResult struct {
	Schedule   *schedule.DaySchedule
	Unassigned []int64
}

// AssignOrdersCommandHandler runs the day assignment pipeline: load couriers and
// the day's unassigned orders, fill slots with the engine, mark placed orders as
// assigned and store the schedule, all in one transaction.
//
// Example:
//
//	handler := NewAssignOrdersCommandHandler(uowFactory, metrics, logger)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNothingToSchedule):
//	    log.Println("No couriers or no orders")
//	case errors.Is(err, ErrAlreadyScheduled):
//	    log.Println("Already done for the day")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	default:
//	    log.Printf("Placed %d orders", result.Schedule.OrderCount())
//	}
type AssignOrdersCommandHandler struct {
	uowFactory AssignmentUoWFactory
	engine     services.AssignmentEngine
	metrics    ports.AssignmentMetrics
	logger     *slog.Logger
}

// NewAssignOrdersCommandHandler creates a handler for assignment runs.
func NewAssignOrdersCommandHandler(
	uowFactory AssignmentUoWFactory,
	metrics ports.AssignmentMetrics,
	logger *slog.Logger,
) AssignOrdersCommandHandler {
	return AssignOrdersCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewAssignmentEngine(),
		metrics:    metrics,
		logger:     logger.With("component", "AssignOrdersCommandHandler"),
	}
}

// Handle runs the assignment for the command's day.
// Returns ErrAlreadyScheduled or ErrNothingToSchedule for the expected
// no-op outcomes; nothing is written in either case.
func (h AssignOrdersCommandHandler) Handle(ctx context.Context, command AssignOrdersCommand) (AssignOrdersResult, error) {
	if err := command.Validate(); err != nil {
		return AssignOrdersResult{}, err
	}

	started := time.Now()
	result, err := h.run(ctx, command.Date())
	h.observe(result, err, time.Since(started))
	return result, err
}

func (h AssignOrdersCommandHandler) run(ctx context.Context, day time.Time) (AssignOrdersResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	scheduleRepo := uow.ScheduleRepository()
	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	existing, err := scheduleRepo.CountByDate(ctx, day)
	if err != nil {
		return AssignOrdersResult{}, err
	}
	if existing > 0 {
		return AssignOrdersResult{}, ErrAlreadyScheduled
	}

	couriers, err := courierRepo.GetAll(ctx)
	if err != nil {
		return AssignOrdersResult{}, err
	}
	if len(couriers) == 0 {
		return AssignOrdersResult{}, ErrNothingToSchedule
	}

	orders, err := orderRepo.GetUnassignedCreatedBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return AssignOrdersResult{}, err
	}
	if len(orders) == 0 {
		return AssignOrdersResult{}, ErrNothingToSchedule
	}

	assignment, err := h.engine.Assign(day, couriers, orders)
	if err != nil {
		return AssignOrdersResult{}, err
	}
	for _, rejected := range assignment.Skipped {
		h.logger.WarnContext(ctx, "input skipped by assignment",
			"date", day.Format(schedule.DateLayout),
			"kind", string(rejected.Kind),
			"id", rejected.ID,
			"reason", rejected.Reason)
	}

	if len(assignment.Assigned) > 0 {
		if err = orderRepo.UpdateAll(ctx, assignment.Assigned); err != nil {
			return AssignOrdersResult{}, err
		}
	}

	if err = scheduleRepo.Add(ctx, assignment.Schedule); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return AssignOrdersResult{}, ErrAlreadyScheduled
		}
		return AssignOrdersResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignOrdersResult{}, err
	}

	return AssignOrdersResult{
		Schedule:   assignment.Schedule,
		Unassigned: assignment.Unassigned,
	}, nil
}

func (h AssignOrdersCommandHandler) observe(result AssignOrdersResult, err error, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}

	switch {
	case err == nil:
		h.metrics.ObserveRun(ports.AssignmentOutcomeScheduled, result.Schedule.OrderCount(), len(result.Unassigned), elapsed)
	case errors.Is(err, ErrAlreadyScheduled):
		h.metrics.ObserveRun(ports.AssignmentOutcomeAlreadyScheduled, 0, 0, elapsed)
	case errors.Is(err, ErrNothingToSchedule):
		h.metrics.ObserveRun(ports.AssignmentOutcomeNothingToDo, 0, 0, elapsed)
	default:
		h.metrics.ObserveRun(ports.AssignmentOutcomeFailed, 0, 0, elapsed)
	}
}
