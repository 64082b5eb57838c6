// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Created orders are looked up by creation time, completed ones by courier and
// completion time, so both pairs are indexed.
type OrderDTO struct {
	ID            int64          `gorm:"primaryKey;autoIncrement"`
	Weight        float64        `gorm:"type:double precision;not null"`
	Region        int            `gorm:"not null"`
	DeliveryHours pq.StringArray `gorm:"type:text[];not null"`
	Cost          float64        `gorm:"type:double precision;not null"`
	CourierID     *int64         `gorm:"index:idx_orders_courier_completed,priority:1"`
	CompletedTime *time.Time     `gorm:"index:idx_orders_courier_completed,priority:2"`
	CreatedAt     time.Time      `gorm:"not null;index"`
}

// TableName overrides GORM's default "order_dtos".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID(),
		Weight:        o.Weight(),
		Region:        o.Region(),
		DeliveryHours: kernel.FormatTimeIntervals(o.DeliveryHours()),
		Cost:          o.Cost(),
		CourierID:     o.Courier(),
		CompletedTime: o.CompletedTime(),
		CreatedAt:     o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	hours, err := kernel.ParseTimeIntervals(dto.DeliveryHours)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		dto.ID,
		dto.Weight,
		dto.Region,
		hours,
		dto.Cost,
		dto.CourierID,
		dto.CompletedTime,
		dto.CreatedAt,
	)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
