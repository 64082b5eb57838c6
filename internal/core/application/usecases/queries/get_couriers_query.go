package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetCouriersQueryIsNotConstructed = errors.New(
	"GetCouriersQuery must be created via NewGetCouriersQuery constructor",
)

// GetCouriersQuery retrieves one page of couriers in creation order.
//
// Example:
//
//	query, err := NewGetCouriersQuery(0, 10)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
//	for _, c := range page.Couriers {
//	    fmt.Println(c.ID, c.Type)
//	}
type GetCouriersQuery struct {
	page Page

	guard guard.ConstructorGuard
}

// NewGetCouriersQuery creates a page query; offset must be >= 0 and limit >= 1.
func NewGetCouriersQuery(offset, limit int) (GetCouriersQuery, error) {
	page, err := NewPage(offset, limit)
	if err != nil {
		return GetCouriersQuery{}, err
	}

	return GetCouriersQuery{
		page:  page,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

// Page returns the requested window.
func (q GetCouriersQuery) Page() Page {
	return q.page
}

// GetCouriersQueryResponse echoes the window next to the couriers in it.
type GetCouriersQueryResponse struct {
	Couriers []CourierView
	Offset   int
	Limit    int
}
