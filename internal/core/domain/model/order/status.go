package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order. It is derived from the order's
// courier and completion fields rather than stored on its own.
//
// State transitions:
//
//	Created ──> Assigned ──> Completed
//	   │                        ^
//	   └────────────────────────┘
//	   (completion confirmed without prior assignment)
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// Created orders have no courier and wait for a day schedule.
	Created

	// Assigned orders belong to a courier's slot but are not delivered yet.
	Assigned

	// Completed orders carry a courier and a completion timestamp.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Assigned:  "Assigned",
		Completed: "Completed",
	}
}

// Validate rejects Unknown and any value outside the declared constants.
func (s Status) Validate() error {
	switch s {
	case Created, Assigned, Completed:
		return nil
	case Unknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
}

// String returns the human-readable name of the status, or "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateAssign allows assignment only from Created. A day schedule is written
// once, so an order already in a slot is never moved to another one.
func (s Status) ValidateAssign() error {
	if s != Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// ValidateComplete allows completion from Created or Assigned. Completed orders
// are handled by Order.Complete, which accepts an identical repeat.
func (s Status) ValidateComplete() error {
	if s != Created && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return nil
}
