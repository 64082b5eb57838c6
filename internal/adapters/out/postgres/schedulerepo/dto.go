// Package schedulerepo persists day schedules: one day_schedules row per
// calendar date and one time_slots row per filled slot.
package schedulerepo

import (
	"time"

	"dispatch/internal/core/domain/model/schedule"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DayScheduleDTO is the header row of a schedule. The unique index on date is
// what keeps a day from being scheduled twice.
type DayScheduleDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Date      time.Time     `gorm:"type:date;not null;uniqueIndex"`
	CreatedAt time.Time     `gorm:"not null"`
	Slots     []TimeSlotDTO `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default "day_schedule_dtos".
func (DayScheduleDTO) TableName() string {
	return "day_schedules"
}

// TimeSlotDTO is one filled slot. OrderIDs keeps placement order.
type TimeSlotDTO struct {
	GroupID    uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ScheduleID uuid.UUID     `gorm:"type:uuid;not null;index"`
	CourierID  int64         `gorm:"not null;index"`
	SlotIndex  int           `gorm:"not null"`
	StartsAt   time.Time     `gorm:"not null"`
	OrderIDs   pq.Int64Array `gorm:"type:bigint[];not null"`
	Weight     float64       `gorm:"type:double precision;not null"`
	Price      float64       `gorm:"type:double precision;not null"`
}

// TableName overrides GORM's default "time_slot_dtos".
func (TimeSlotDTO) TableName() string {
	return "time_slots"
}

func fromDomain(d *schedule.DaySchedule) DayScheduleDTO {
	dto := DayScheduleDTO{
		ID:   d.ID(),
		Date: dateOnly(d.Date()),
	}

	for _, cs := range d.Couriers() {
		for _, s := range cs.Slots() {
			dto.Slots = append(dto.Slots, TimeSlotDTO{
				GroupID:    s.GroupID(),
				ScheduleID: d.ID(),
				CourierID:  cs.CourierID(),
				SlotIndex:  s.Index(),
				StartsAt:   s.Start(),
				OrderIDs:   pq.Int64Array(s.OrderIDs()),
				Weight:     s.Weight(),
				Price:      s.Price(),
			})
		}
	}
	return dto
}

// toDomain rebuilds the schedule from a header and its slots, which must be
// sorted by courier then slot index.
func toDomain(dto DayScheduleDTO) (*schedule.DaySchedule, error) {
	var (
		couriers []schedule.CourierSchedule
		current  []*schedule.TimeSlot
	)

	flush := func() error {
		if len(current) == 0 {
			return nil
		}
		cs, err := schedule.NewCourierSchedule(current[0].CourierID(), current)
		if err != nil {
			return err
		}
		couriers = append(couriers, cs)
		current = nil
		return nil
	}

	for _, s := range dto.Slots {
		if len(current) > 0 && current[0].CourierID() != s.CourierID {
			if err := flush(); err != nil {
				return nil, err
			}
		}

		slot, err := schedule.RestoreTimeSlot(
			s.GroupID,
			s.CourierID,
			s.SlotIndex,
			s.StartsAt,
			[]int64(s.OrderIDs),
			s.Weight,
			s.Price,
		)
		if err != nil {
			return nil, err
		}
		current = append(current, slot)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return schedule.RestoreDaySchedule(dto.ID, dto.Date, couriers)
}

// dateOnly keeps the calendar day of t as a UTC midnight, the form a postgres
// date column reads back as.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
