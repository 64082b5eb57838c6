package schedulerepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/schedule"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormScheduleRepository implements ports.ScheduleRepository using GORM.
type GormScheduleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormScheduleRepository creates a new GORM schedule repository.
func NewGormScheduleRepository(db *gorm.DB, tracker aggregateTracker) *GormScheduleRepository {
	return &GormScheduleRepository{
		db:      db,
		tracker: tracker,
	}
}

// CountByDate counts schedules stored for the calendar day of date.
func (r *GormScheduleRepository) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&DayScheduleDTO{}).
		Where("date = ?", date.Format(schedule.DateLayout)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Add inserts the schedule header with ON CONFLICT (date) DO NOTHING, then its
// slots. When the header was not inserted the day already has a schedule and
// ObjectAlreadyExistsError is returned; nothing else is written.
func (r *GormScheduleRepository) Add(ctx context.Context, daySchedule *schedule.DaySchedule) error {
	if err := daySchedule.Validate(); err != nil {
		return err
	}

	dto := fromDomain(daySchedule)
	db := r.db.WithContext(ctx)

	result := db.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "date"}}, DoNothing: true}).
		Omit("Slots").
		Create(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectAlreadyExistsError("schedule", daySchedule.DateKey())
	}

	if len(dto.Slots) > 0 {
		if err := db.Create(&dto.Slots).Error; err != nil {
			if isUniqueViolation(err) {
				return errs.NewObjectAlreadyExistsErrorWithCause("schedule", daySchedule.DateKey(), err)
			}
			return err
		}
	}

	r.tracker.TrackAggregate(daySchedule.ID(), daySchedule)
	return nil
}

// Get loads the schedule of the day of date, optionally narrowed to one courier.
func (r *GormScheduleRepository) Get(ctx context.Context, date time.Time, courierID *int64) (*schedule.DaySchedule, error) {
	key := date.Format(schedule.DateLayout)

	var dto DayScheduleDTO
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			if courierID != nil {
				db = db.Where("courier_id = ?", *courierID)
			}
			return db.Order("courier_id").Order("slot_index")
		}).
		First(&dto, "date = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("schedule", key)
		}
		return nil, err
	}

	return toDomain(dto)
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
