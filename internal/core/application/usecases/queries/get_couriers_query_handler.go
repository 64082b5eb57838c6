package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetCouriersQueryHandler pages through the couriers table.
type GetCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetCouriersQueryHandler creates a handler for courier pages.
func NewGetCouriersQueryHandler(db *gorm.DB) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{db: db}
}

// Handle returns the couriers of the page. A page past the end is empty, not
// an error.
func (h GetCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetCouriersQuery,
) (GetCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCouriersQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+courierColumns+`
		FROM couriers
		ORDER BY id
		OFFSET ? LIMIT ?
	`, query.page.Offset, query.page.Limit).Rows()
	if err != nil {
		return GetCouriersQueryResponse{}, err
	}
	defer rows.Close()

	couriers := make([]CourierView, 0)
	for rows.Next() {
		view, scanErr := scanCourier(rows)
		if scanErr != nil {
			return GetCouriersQueryResponse{}, scanErr
		}
		couriers = append(couriers, view)
	}

	if err = rows.Err(); err != nil {
		return GetCouriersQueryResponse{}, err
	}

	return GetCouriersQueryResponse{
		Couriers: couriers,
		Offset:   query.page.Offset,
		Limit:    query.page.Limit,
	}, nil
}
