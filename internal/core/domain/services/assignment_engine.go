package services

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/schedule"
)

// ErrOrderIsNotAssignable marks an order that reached the engine in a state
// other than Created.
var ErrOrderIsNotAssignable = errors.New("order is not assignable")

// RejectionKind tells which input a Rejection refers to.
type RejectionKind string

const (
	RejectedCourier RejectionKind = "courier"
	RejectedOrder   RejectionKind = "order"
)

// Rejection records an input left out of a run because it failed validation
// or has no capacity profile. Rejections do not abort the run.
type Rejection struct {
	Kind   RejectionKind
	ID     int64
	Reason error
}

// AssignmentResult is the outcome of one engine run.
type AssignmentResult struct {
	// Schedule holds every courier with at least one placed order.
	Schedule *schedule.DaySchedule
	// Assigned are the placed orders, already attached to their courier.
	Assigned []*order.Order
	// Unassigned are ids of valid orders no slot could take, in ranking order.
	Unassigned []int64
	// Skipped are couriers and orders rejected before placement.
	Skipped []Rejection
}

// AssignmentEngine fills courier slots with orders for one day using a
// first-fit greedy pass.
//
// Selection algorithm:
//   - Orders are ranked heaviest first (RankOrders)
//   - For each order, couriers are tried in input order and the first match wins
//   - A courier is skipped when the order's region is not among its priority
//     regions, the order outweighs the profile limit, or its open-slot counter is 0
//   - Within a courier the first slot in generation order that CanTake the order
//     receives it
//   - Every placement decrements the courier's open-slot counter, whether or not
//     the slot was empty before
//
// The engine performs no I/O. Placed orders are assigned to their courier so the
// caller only has to persist them.
//
// Example usage:
//
//	engine := NewAssignmentEngine()
//	result, err := engine.Assign(day, couriers, orders)
//	if err != nil {
//	    return err
//	}
//	for _, cs := range result.Schedule.Couriers() {
//	    fmt.Println(cs.CourierID(), len(cs.Slots()))
//	}
type AssignmentEngine struct {
	slotBuilder SlotBuilder
}

// NewAssignmentEngine creates an engine with the default SlotBuilder.
func NewAssignmentEngine() AssignmentEngine {
	return AssignmentEngine{slotBuilder: NewSlotBuilder()}
}

// courierLane is the per-courier part of the slot board.
type courierLane struct {
	courier *courier.Courier
	profile courier.Profile
	slots   []*schedule.TimeSlot
	open    int
}

func (l *courierLane) accepts(o *order.Order) bool {
	if !l.courier.ServesRegion(o.Region()) {
		return false
	}
	if o.Weight() > l.profile.MaxWeight {
		return false
	}
	return l.open > 0
}

func (l *courierLane) firstFit(o *order.Order) *schedule.TimeSlot {
	for _, s := range l.slots {
		if s.CanTake(o) {
			return s
		}
	}
	return nil
}

// slotBoard owns every slot of a run, addressed by courier position and slot index.
type slotBoard struct {
	lanes []*courierLane
}

func (b *slotBoard) place(o *order.Order) (*courierLane, error) {
	for _, lane := range b.lanes {
		if !lane.accepts(o) {
			continue
		}

		slot := lane.firstFit(o)
		if slot == nil {
			continue
		}

		if err := slot.Place(o); err != nil {
			return nil, err
		}
		lane.open--
		return lane, nil
	}
	return nil, nil
}

// Assign runs the greedy pass for the calendar day of date.
//
// Parameters:
//   - date: the day slots are laid out on
//   - couriers: candidates in priority order (storage returns creation order)
//   - orders: the day's unassigned orders
//
// Returns:
//   - AssignmentResult: schedule, placed and unplaced orders, rejected inputs
//   - error: only for internal inconsistencies; invalid inputs are reported in
//     AssignmentResult.Skipped instead
func (e AssignmentEngine) Assign(
	date time.Time,
	couriers []*courier.Courier,
	orders []*order.Order,
) (AssignmentResult, error) {
	var result AssignmentResult

	board := &slotBoard{lanes: make([]*courierLane, 0, len(couriers))}
	for _, c := range couriers {
		lane, err := e.newLane(date, c)
		if err != nil {
			result.Skipped = append(result.Skipped, Rejection{Kind: RejectedCourier, ID: idOfCourier(c), Reason: err})
			continue
		}
		board.lanes = append(board.lanes, lane)
	}

	candidates := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			result.Skipped = append(result.Skipped, Rejection{Kind: RejectedOrder, ID: idOfOrder(o), Reason: err})
			continue
		}
		if o.Status() != order.Created {
			result.Skipped = append(result.Skipped, Rejection{
				Kind:   RejectedOrder,
				ID:     o.ID(),
				Reason: fmt.Errorf("%w: status is %s", ErrOrderIsNotAssignable, o.Status()),
			})
			continue
		}
		candidates = append(candidates, o)
	}

	for _, o := range RankOrders(candidates) {
		lane, err := board.place(o)
		if err != nil {
			return AssignmentResult{}, err
		}
		if lane == nil {
			result.Unassigned = append(result.Unassigned, o.ID())
			continue
		}

		if err = o.Assign(lane.courier.ID()); err != nil {
			return AssignmentResult{}, err
		}
		result.Assigned = append(result.Assigned, o)
	}

	daySchedule, err := materialize(date, board)
	if err != nil {
		return AssignmentResult{}, err
	}
	result.Schedule = daySchedule

	return result, nil
}

func (e AssignmentEngine) newLane(date time.Time, c *courier.Courier) (*courierLane, error) {
	slots, err := e.slotBuilder.Build(date, c)
	if err != nil {
		return nil, err
	}

	profile, err := c.Profile()
	if err != nil {
		return nil, err
	}

	return &courierLane{
		courier: c,
		profile: profile,
		slots:   slots,
		open:    len(slots),
	}, nil
}

// materialize turns the final board into a day schedule: couriers in input
// order, slots in generation order, and only slots that received an order.
func materialize(date time.Time, board *slotBoard) (*schedule.DaySchedule, error) {
	couriers := make([]schedule.CourierSchedule, 0, len(board.lanes))
	for _, lane := range board.lanes {
		cs, err := schedule.NewCourierSchedule(lane.courier.ID(), lane.slots)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, cs)
	}

	return schedule.NewDaySchedule(date, couriers)
}

func idOfCourier(c *courier.Courier) int64 {
	if c == nil {
		return 0
	}
	return c.ID()
}

func idOfOrder(o *order.Order) int64 {
	if o == nil {
		return 0
	}
	return o.ID()
}
