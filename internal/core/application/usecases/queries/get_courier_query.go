package queries

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierQueryIsNotConstructed = errors.New(
	"GetCourierQuery must be created via NewGetCourierQuery constructor",
)

// GetCourierQuery retrieves one courier by id.
type GetCourierQuery struct {
	courierID int64

	guard guard.ConstructorGuard
}

// NewGetCourierQuery creates a query for the courier with the given id.
func NewGetCourierQuery(courierID int64) (GetCourierQuery, error) {
	if courierID <= 0 {
		return GetCourierQuery{}, errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "max int64")
	}

	return GetCourierQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierQueryIsNotConstructed)
}

// CourierID returns the requested id.
func (q GetCourierQuery) CourierID() int64 {
	return q.courierID
}
