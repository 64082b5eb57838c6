package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves one page of orders in creation order.
type GetOrdersQuery struct {
	page Page

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a page query; offset must be >= 0 and limit >= 1.
func NewGetOrdersQuery(offset, limit int) (GetOrdersQuery, error) {
	page, err := NewPage(offset, limit)
	if err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		page:  page,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) Page() Page {
	return q.page
}
