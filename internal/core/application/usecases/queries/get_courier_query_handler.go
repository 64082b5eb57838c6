package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCourierQueryHandler reads a single courier row.
type GetCourierQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierQueryHandler creates a handler for single courier lookups.
func NewGetCourierQueryHandler(db *gorm.DB) GetCourierQueryHandler {
	return GetCourierQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when no courier has the id.
func (h GetCourierQueryHandler) Handle(ctx context.Context, query GetCourierQuery) (CourierView, error) {
	if err := query.Validate(); err != nil {
		return CourierView{}, err
	}

	return loadCourier(ctx, h.db, query.courierID)
}

func loadCourier(ctx context.Context, db *gorm.DB, id int64) (CourierView, error) {
	row := db.WithContext(ctx).Raw(`
		SELECT `+courierColumns+`
		FROM couriers
		WHERE id = ?
	`, id).Row()

	view, err := scanCourier(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CourierView{}, errs.NewObjectNotFoundError("courier", id)
		}
		return CourierView{}, err
	}
	return view, nil
}
