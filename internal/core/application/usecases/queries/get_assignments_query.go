package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrGetAssignmentsQueryIsNotConstructed = errors.New(
	"GetAssignmentsQuery must be created via NewGetAssignmentsQuery constructor",
)

// GetAssignmentsQuery reads the stored schedule of a day, optionally for one
// courier only.
//
// Example:
//
//	courierID := int64(3)
//	query, err := NewGetAssignmentsQuery(time.Now(), &courierID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetAssignmentsQuery struct {
	date      time.Time
	courierID *int64

	guard guard.ConstructorGuard
}

// NewGetAssignmentsQuery creates a query for the calendar day of date. A nil
// courierID selects every courier.
func NewGetAssignmentsQuery(date time.Time, courierID *int64) (GetAssignmentsQuery, error) {
	if date.IsZero() {
		return GetAssignmentsQuery{}, errs.NewValueIsRequiredError("date")
	}

	query := GetAssignmentsQuery{
		date:  kernel.StartOfDay(date),
		guard: guard.NewConstructorGuard(),
	}

	if courierID != nil {
		if *courierID <= 0 {
			return GetAssignmentsQuery{}, errs.NewValueIsOutOfRangeError("courier id", *courierID, 1, "max int64")
		}
		id := *courierID
		query.courierID = &id
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentsQueryIsNotConstructed)
}

// Date returns midnight of the requested day.
func (q GetAssignmentsQuery) Date() time.Time {
	return q.date
}

// AssignmentsView is the schedule of one day. Couriers is empty, not nil,
// when the day has no schedule.
type AssignmentsView struct {
	Date     time.Time
	Couriers []CourierAssignmentsView
}

// CourierAssignmentsView lists a courier's filled slots in slot order.
type CourierAssignmentsView struct {
	CourierID int64
	Groups    []OrderGroupView
}

// OrderGroupView is one filled slot; Orders keep placement order. Price is
// the batched price of the whole group.
type OrderGroupView struct {
	GroupID  uuid.UUID
	StartsAt time.Time
	Weight   float64
	Price    float64
	Orders   []OrderView
}
