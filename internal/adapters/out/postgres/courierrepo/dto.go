// Package courierrepo maps courier aggregates to the couriers table. Regions and
// working hours are stored as postgres arrays, in priority and layout order.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/lib/pq"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID           int64          `gorm:"primaryKey;autoIncrement"`
	Type         string         `gorm:"type:varchar(8);not null"`
	Regions      pq.Int64Array  `gorm:"type:integer[];not null"`
	WorkingHours pq.StringArray `gorm:"type:text[];not null"`
	CreatedAt    time.Time      `gorm:"not null"`
}

// TableName overrides GORM's default "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier aggregate to its database representation.
// A zero id leaves the key to the sequence.
func fromDomain(c *courier.Courier) CourierDTO {
	regions := c.Regions()
	arr := make(pq.Int64Array, len(regions))
	for i, r := range regions {
		arr[i] = int64(r)
	}

	return CourierDTO{
		ID:           c.ID(),
		Type:         c.Type().String(),
		Regions:      arr,
		WorkingHours: kernel.FormatTimeIntervals(c.WorkingHours()),
	}
}

// toDomain restores a courier aggregate from its row.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	courierType, err := courier.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	hours, err := kernel.ParseTimeIntervals(dto.WorkingHours)
	if err != nil {
		return nil, err
	}

	regions := make([]int, len(dto.Regions))
	for i, r := range dto.Regions {
		regions[i] = int(r)
	}

	return courier.RestoreCourier(dto.ID, courierType, regions, hours)
}

func toDomainAll(dtos []CourierDTO) ([]*courier.Courier, error) {
	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}
	return couriers, nil
}
