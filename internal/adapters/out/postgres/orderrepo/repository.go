package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddAll inserts the orders in one statement and writes the generated ids back.
func (r *GormOrderRepository) AddAll(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		if o.ID() != 0 {
			return errs.NewObjectAlreadyExistsError("order", o.ID())
		}
		dtos = append(dtos, fromDomain(o))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	for i, o := range orders {
		if err := o.AssignID(dtos[i].ID); err != nil {
			return err
		}
		r.tracker.TrackAggregate(o.ID(), o)
	}
	return nil
}

// UpdateAll writes the courier and completion columns of every order. Nothing
// else about an order changes after creation.
func (r *GormOrderRepository) UpdateAll(ctx context.Context, orders []*order.Order) error {
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}

		result := r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", o.ID()).
			Updates(map[string]any{
				"courier_id":     o.Courier(),
				"completed_time": o.CompletedTime(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("order", o.ID())
		}

		r.tracker.TrackAggregate(o.ID(), o)
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("order id", id, 1, "max int64")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPage returns orders ordered by id.
func (r *GormOrderRepository) GetPage(ctx context.Context, offset, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetUnassignedCreatedBetween locks and returns the orders without a courier
// created in [from, to), ordered by id.
func (r *GormOrderRepository) GetUnassignedCreatedBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("courier_id IS NULL AND created_at >= ? AND created_at < ?", from, to).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}
