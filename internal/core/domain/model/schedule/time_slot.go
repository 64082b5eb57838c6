package schedule

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	// ErrTimeSlotIsNotConstructed is returned when a TimeSlot literal is used.
	ErrTimeSlotIsNotConstructed = errors.New("TimeSlot must be created via NewTimeSlot constructor")

	// ErrOrderDoesNotFit is returned by Place when CanTake would have said no.
	ErrOrderDoesNotFit = errors.New("order does not fit into time slot")
)

// TimeSlot is one fixed-length delivery window of a courier on a given day.
// A slot batches up to Profile.MaxOrdersPerSlot orders whose total weight stays
// within Profile.MaxWeight, and accumulates the batched price as orders arrive.
//
// Orders are kept in placement order; the position of an order decides whether
// it is charged in full (first) or with the additional order factor (later).
type TimeSlot struct {
	groupID   uuid.UUID
	courierID int64
	index     int
	start     time.Time
	profile   courier.Profile
	orderIDs  []int64
	weight    float64
	price     float64
	guard     guard.ConstructorGuard
}

// NewTimeSlot creates an empty slot.
//
// Parameters:
//   - courierID: owner of the slot (must be positive)
//   - index: generation order of the slot within the courier's day (0-based)
//   - start: the instant the slot opens
//   - profile: capacity and pricing rules of the courier's type
func NewTimeSlot(courierID int64, index int, start time.Time, profile courier.Profile) (*TimeSlot, error) {
	if courierID <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "max int64")
	}
	if index < 0 {
		return nil, errs.NewValueIsOutOfRangeError("slot index", index, 0, "max int")
	}
	if start.IsZero() {
		return nil, errs.NewValueIsRequiredError("slot start")
	}

	return &TimeSlot{
		groupID:   uuid.New(),
		courierID: courierID,
		index:     index,
		start:     start,
		profile:   profile,
		orderIDs:  make([]int64, 0, profile.MaxOrdersPerSlot),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreTimeSlot rebuilds a persisted, already filled slot. The slot carries no
// profile and is not meant to accept further orders.
func RestoreTimeSlot(
	groupID uuid.UUID,
	courierID int64,
	index int,
	start time.Time,
	orderIDs []int64,
	weight float64,
	price float64,
) (*TimeSlot, error) {
	if groupID == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("group id")
	}
	if len(orderIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("slot orders")
	}

	slot, err := NewTimeSlot(courierID, index, start, courier.Profile{})
	if err != nil {
		return nil, err
	}

	slot.groupID = groupID
	slot.orderIDs = slices.Clone(orderIDs)
	slot.weight = weight
	slot.price = price
	return slot, nil
}

// Validate rejects slots not built through a constructor.
func (s *TimeSlot) Validate() error {
	if s == nil {
		return ErrTimeSlotIsNotConstructed
	}
	return s.guard.Validate(ErrTimeSlotIsNotConstructed)
}

// GroupID identifies the batch of orders delivered in this slot.
func (s *TimeSlot) GroupID() uuid.UUID {
	return s.groupID
}

// CourierID returns the owner of the slot.
func (s *TimeSlot) CourierID() int64 {
	return s.courierID
}

// Index returns the generation order of the slot within its courier's day.
func (s *TimeSlot) Index() int {
	return s.index
}

// Start returns the instant the slot opens.
func (s *TimeSlot) Start() time.Time {
	return s.start
}

// StartMinute is the minute of day the slot opens at, in the start's location.
func (s *TimeSlot) StartMinute() int {
	return kernel.MinuteOfDay(s.start)
}

// OrderIDs returns the placed orders in placement order.
func (s *TimeSlot) OrderIDs() []int64 {
	return slices.Clone(s.orderIDs)
}

// Len is the number of placed orders.
func (s *TimeSlot) Len() int {
	return len(s.orderIDs)
}

// IsEmpty reports whether no order was placed.
func (s *TimeSlot) IsEmpty() bool {
	return len(s.orderIDs) == 0
}

// Weight is the total weight of placed orders.
func (s *TimeSlot) Weight() float64 {
	return s.weight
}

// Price is the accumulated batched price of placed orders.
func (s *TimeSlot) Price() float64 {
	return s.price
}

// CanTake reports whether o fits: a free order position, room for its weight
// under the profile's limit, and the slot start inside one of o's delivery windows.
func (s *TimeSlot) CanTake(o *order.Order) bool {
	if o == nil {
		return false
	}
	if len(s.orderIDs) >= s.profile.MaxOrdersPerSlot {
		return false
	}
	if s.weight+o.Weight() > s.profile.MaxWeight {
		return false
	}
	return o.CanBeDeliveredAt(s.StartMinute())
}

// Place appends o to the slot and adds its weight and price.
func (s *TimeSlot) Place(o *order.Order) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.CanTake(o) {
		return fmt.Errorf("%w: slot %d of courier %d", ErrOrderDoesNotFit, s.index, s.courierID)
	}

	s.price += s.profile.OrderPrice(o.Cost(), len(s.orderIDs))
	s.weight += o.Weight()
	s.orderIDs = append(s.orderIDs, o.ID())
	return nil
}
