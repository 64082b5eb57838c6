package queries

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierMetaInfoQueryIsNotConstructed = errors.New(
	"GetCourierMetaInfoQuery must be created via NewGetCourierMetaInfoQuery constructor",
)

// GetCourierMetaInfoQuery asks for a courier's earnings and rating over the
// half-open period [start, end).
//
// Example:
//
//	query, err := NewGetCourierMetaInfoQuery(7, monday, nextMonday)
//	if err != nil {
//	    return err
//	}
//	info, err := handler.Handle(ctx, query)
//	if info.Rating == nil {
//	    fmt.Println("no completed orders in the period")
//	}
type GetCourierMetaInfoQuery struct {
	courierID int64
	start     time.Time
	end       time.Time

	guard guard.ConstructorGuard
}

// NewGetCourierMetaInfoQuery checks the id and that start is before end.
func NewGetCourierMetaInfoQuery(courierID int64, start, end time.Time) (GetCourierMetaInfoQuery, error) {
	var failures []error
	if courierID <= 0 {
		failures = append(failures, errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "max int64"))
	}
	if start.IsZero() {
		failures = append(failures, errs.NewValueIsRequiredError("start date"))
	}
	if end.IsZero() {
		failures = append(failures, errs.NewValueIsRequiredError("end date"))
	}
	if len(failures) > 0 {
		return GetCourierMetaInfoQuery{}, errors.Join(failures...)
	}

	if !start.Before(end) {
		return GetCourierMetaInfoQuery{}, errs.NewValueIsInvalidError("start date must be before end date")
	}

	return GetCourierMetaInfoQuery{
		courierID: courierID,
		start:     start,
		end:       end,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierMetaInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierMetaInfoQueryIsNotConstructed)
}

// CourierMetaInfoView is the courier read model plus its performance over the
// period. Earnings and Rating are nil when nothing was completed.
type CourierMetaInfoView struct {
	CourierView

	Earnings *float64
	Rating   *float64
}
