package services

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/schedule"
)

// ErrCourierIsNotPersisted is returned when slots are requested for a courier
// that has no storage identity yet.
var ErrCourierIsNotPersisted = errors.New("courier must be persisted before scheduling")

// SlotBuilder lays out the empty time slots of a courier for one calendar day.
//
// For every working interval, in the order the courier lists them, slots of
// Profile.SlotSpanMinutes are emitted back to back from the interval start.
// The remaining budget starts at duration+span and a slot is emitted while the
// budget is at least one span, so an interval of length L yields
// floor(L/span)+1 slots, the last one possibly extending past the interval end.
//
// Example:
//
//	builder := NewSlotBuilder()
//	slots, err := builder.Build(day, bikeCourier) // 09:00-10:00, span 36
//	// slots start at 09:00 and 09:36
type SlotBuilder struct{}

// NewSlotBuilder creates a SlotBuilder.
func NewSlotBuilder() SlotBuilder {
	return SlotBuilder{}
}

// Build returns the courier's slots for the calendar day of date, ordered by
// working interval then by start. Slot indexes follow the same order starting at 0.
//
// Returns:
//   - []*schedule.TimeSlot: empty slots, each carrying the courier's profile
//   - error: courier validation or profile lookup failures
func (b SlotBuilder) Build(date time.Time, c *courier.Courier) ([]*schedule.TimeSlot, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.ID() == 0 {
		return nil, ErrCourierIsNotPersisted
	}

	profile, err := c.Profile()
	if err != nil {
		return nil, err
	}

	span := profile.SlotSpanMinutes()
	if span <= 0 {
		return nil, fmt.Errorf("slot span of %s is %d minutes", c.Type(), span)
	}

	var slots []*schedule.TimeSlot
	for _, window := range c.WorkingHours() {
		cursor := window.StartOn(date)
		remaining := window.Duration() + span

		for remaining >= span {
			slot, slotErr := schedule.NewTimeSlot(c.ID(), len(slots), cursor, profile)
			if slotErr != nil {
				return nil, slotErr
			}
			slots = append(slots, slot)

			cursor = cursor.Add(time.Duration(span) * time.Minute)
			remaining -= span
		}
	}

	return slots, nil
}
