package queries

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetCourierMetaInfoQueryHandler aggregates the courier's completed orders in
// SQL and rates them with services.RateCourier.
type GetCourierMetaInfoQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierMetaInfoQueryHandler(db *gorm.DB) GetCourierMetaInfoQueryHandler {
	return GetCourierMetaInfoQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when the courier does not exist.
func (h GetCourierMetaInfoQueryHandler) Handle(
	ctx context.Context,
	query GetCourierMetaInfoQuery,
) (CourierMetaInfoView, error) {
	if err := query.Validate(); err != nil {
		return CourierMetaInfoView{}, err
	}

	view, err := loadCourier(ctx, h.db, query.courierID)
	if err != nil {
		return CourierMetaInfoView{}, err
	}

	courierType, err := courier.ParseType(view.Type)
	if err != nil {
		return CourierMetaInfoView{}, err
	}

	var summary services.CompletedOrdersSummary
	err = h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(cost), 0)
		FROM orders
		WHERE courier_id = ?
			AND completed_time >= ?
			AND completed_time < ?
	`, query.courierID, query.start, query.end).Row().Scan(&summary.Count, &summary.CostSum)
	if err != nil {
		return CourierMetaInfoView{}, err
	}

	info, err := services.RateCourier(courierType, summary, query.start, query.end)
	if err != nil {
		return CourierMetaInfoView{}, err
	}

	return CourierMetaInfoView{
		CourierView: view,
		Earnings:    info.Earnings,
		Rating:      info.Rating,
	}, nil
}
