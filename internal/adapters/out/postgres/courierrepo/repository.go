package courierrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddAll inserts the couriers in one statement and writes the generated ids
// back into the aggregates.
func (r *GormCourierRepository) AddAll(ctx context.Context, couriers []*courier.Courier) error {
	if len(couriers) == 0 {
		return nil
	}

	dtos := make([]CourierDTO, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.ID() != 0 {
			return errs.NewObjectAlreadyExistsError("courier", c.ID())
		}
		dtos = append(dtos, fromDomain(c))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	for i, c := range couriers {
		if err := c.AssignID(dtos[i].ID); err != nil {
			return err
		}
		r.tracker.TrackAggregate(c.ID(), c)
	}
	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id int64) (*courier.Courier, error) {
	if id <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("courier id", id, 1, "max int64")
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPage returns couriers ordered by id.
func (r *GormCourierRepository) GetPage(ctx context.Context, offset, limit int) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAll returns every courier in creation order.
func (r *GormCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}
