package schedule

import (
	"errors"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/google/uuid"
)

// DateLayout is the calendar date form used on the wire and as storage key.
const DateLayout = time.DateOnly

// ErrDayScheduleIsNotConstructed is returned when a DaySchedule literal is used.
var ErrDayScheduleIsNotConstructed = errors.New("DaySchedule must be created via NewDaySchedule constructor")

// CourierSchedule is the part of a day schedule that belongs to one courier:
// the filled slots in the order they were generated.
type CourierSchedule struct {
	courierID int64
	slots     []*TimeSlot
}

// NewCourierSchedule groups slots of one courier. Empty slots are dropped.
func NewCourierSchedule(courierID int64, slots []*TimeSlot) (CourierSchedule, error) {
	if courierID <= 0 {
		return CourierSchedule{}, errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "max int64")
	}

	kept := make([]*TimeSlot, 0, len(slots))
	for _, s := range slots {
		if err := s.Validate(); err != nil {
			return CourierSchedule{}, err
		}
		if s.CourierID() != courierID {
			return CourierSchedule{}, errs.NewValueIsInvalidError("slot belongs to another courier")
		}
		if !s.IsEmpty() {
			kept = append(kept, s)
		}
	}

	slices.SortStableFunc(kept, func(a, b *TimeSlot) int {
		return a.Index() - b.Index()
	})

	return CourierSchedule{courierID: courierID, slots: kept}, nil
}

// CourierID returns the courier the slots belong to.
func (c CourierSchedule) CourierID() int64 {
	return c.courierID
}

// Slots returns the filled slots in generation order.
func (c CourierSchedule) Slots() []*TimeSlot {
	return slices.Clone(c.slots)
}

// OrderCount sums placed orders across slots.
func (c CourierSchedule) OrderCount() int {
	n := 0
	for _, s := range c.slots {
		n += s.Len()
	}
	return n
}

// DaySchedule is the write-once assignment result for one calendar date.
//
// Business rules:
//   - At most one DaySchedule exists per date
//   - Only couriers with at least one placed order are listed, in input order
//   - Only slots with at least one placed order are listed, in generation order
type DaySchedule struct {
	id       uuid.UUID
	date     time.Time
	couriers []CourierSchedule
	guard    guard.ConstructorGuard
}

// NewDaySchedule creates a schedule for the calendar day of date. Couriers whose
// schedule holds no slot are omitted.
func NewDaySchedule(date time.Time, couriers []CourierSchedule) (*DaySchedule, error) {
	return RestoreDaySchedule(uuid.New(), date, couriers)
}

// RestoreDaySchedule rebuilds a persisted schedule.
func RestoreDaySchedule(id uuid.UUID, date time.Time, couriers []CourierSchedule) (*DaySchedule, error) {
	if id == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("schedule id")
	}
	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("schedule date")
	}

	kept := make([]CourierSchedule, 0, len(couriers))
	for _, c := range couriers {
		if len(c.slots) > 0 {
			kept = append(kept, c)
		}
	}

	return &DaySchedule{
		id:       id,
		date:     kernel.StartOfDay(date),
		couriers: kept,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate rejects schedules not built through a constructor.
func (d *DaySchedule) Validate() error {
	if d == nil {
		return ErrDayScheduleIsNotConstructed
	}
	return d.guard.Validate(ErrDayScheduleIsNotConstructed)
}

// ID returns the schedule identity.
func (d *DaySchedule) ID() uuid.UUID {
	return d.id
}

// Date returns midnight of the scheduled day.
func (d *DaySchedule) Date() time.Time {
	return d.date
}

// DateKey renders Date as YYYY-MM-DD.
func (d *DaySchedule) DateKey() string {
	return d.date.Format(DateLayout)
}

// Couriers returns every courier schedule in input order.
func (d *DaySchedule) Couriers() []CourierSchedule {
	return slices.Clone(d.couriers)
}

// IsEmpty reports whether no order was placed.
func (d *DaySchedule) IsEmpty() bool {
	return len(d.couriers) == 0
}

// OrderCount sums placed orders across couriers.
func (d *DaySchedule) OrderCount() int {
	n := 0
	for _, c := range d.couriers {
		n += c.OrderCount()
	}
	return n
}

// ForCourier returns a copy of the schedule restricted to courierID. The copy
// has no couriers when courierID received nothing.
func (d *DaySchedule) ForCourier(courierID int64) *DaySchedule {
	filtered := &DaySchedule{
		id:       d.id,
		date:     d.date,
		couriers: make([]CourierSchedule, 0, 1),
		guard:    d.guard,
	}
	for _, c := range d.couriers {
		if c.courierID == courierID {
			filtered.couriers = append(filtered.couriers, c)
		}
	}
	return filtered
}
