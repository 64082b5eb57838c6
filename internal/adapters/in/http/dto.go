package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type emptyResponse struct{}

type CreateCourierDto struct {
	CourierType  string   `json:"courier_type"  validate:"required,courier_type"`
	Regions      []int    `json:"regions"       validate:"required,min=1,dive,gt=0"`
	WorkingHours []string `json:"working_hours" validate:"required,min=1,dive,hhmm_interval"`
}

type CreateCourierRequest struct {
	Couriers []CreateCourierDto `json:"couriers" validate:"required,min=1,dive"`
}

type CourierDto struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int    `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

type CreateCouriersResponse struct {
	Couriers []CourierDto `json:"couriers"`
}

type GetCouriersResponse struct {
	Couriers []CourierDto `json:"couriers"`
	Offset   int          `json:"offset"`
	Limit    int          `json:"limit"`
}

type GetCourierMetaInfoResponse struct {
	CourierDto

	Rating   *float64 `json:"rating,omitempty"`
	Earnings *float64 `json:"earnings,omitempty"`
}

type CreateOrderDto struct {
	Weight        float64  `json:"weight"         validate:"gt=0"`
	Regions       int      `json:"regions"        validate:"gt=0"`
	DeliveryHours []string `json:"delivery_hours" validate:"required,min=1,dive,hhmm_interval"`
	Cost          float64  `json:"cost"           validate:"gt=0"`
}

type CreateOrderRequest struct {
	Orders []CreateOrderDto `json:"orders" validate:"required,min=1,dive"`
}

type OrderDto struct {
	OrderID       int64      `json:"order_id"`
	Weight        float64    `json:"weight"`
	Regions       int        `json:"regions"`
	DeliveryHours []string   `json:"delivery_hours"`
	Cost          float64    `json:"cost"`
	CompletedTime *time.Time `json:"completed_time"`
}

type CompleteOrder struct {
	CourierID    int64     `json:"courier_id"    validate:"gt=0"`
	OrderID      int64     `json:"order_id"      validate:"gt=0"`
	CompleteTime time.Time `json:"complete_time" validate:"required"`
}

type CompleteOrderRequestDto struct {
	CompleteInfo []CompleteOrder `json:"complete_info" validate:"required,min=1,dive"`
}

type GroupOrders struct {
	GroupOrderID uuid.UUID  `json:"group_order_id"`
	StartTime    time.Time  `json:"start_time"`
	Weight       float64    `json:"weight"`
	Price        float64    `json:"price"`
	Orders       []OrderDto `json:"orders"`
}

type CouriersGroupOrders struct {
	CourierID int64         `json:"courier_id"`
	Orders    []GroupOrders `json:"orders"`
}

type OrderAssignResponse struct {
	Date     string                `json:"date"`
	Couriers []CouriersGroupOrders `json:"couriers"`
}

func courierDtoFromView(v queries.CourierView) CourierDto {
	return CourierDto{
		CourierID:    v.ID,
		CourierType:  v.Type,
		Regions:      nonNil(v.Regions),
		WorkingHours: nonNil(v.WorkingHours),
	}
}

func courierDtoFromModel(c *courier.Courier) CourierDto {
	return CourierDto{
		CourierID:    c.ID(),
		CourierType:  c.Type().String(),
		Regions:      nonNil(c.Regions()),
		WorkingHours: nonNil(kernel.FormatTimeIntervals(c.WorkingHours())),
	}
}

func orderDtoFromView(v queries.OrderView) OrderDto {
	return OrderDto{
		OrderID:       v.ID,
		Weight:        v.Weight,
		Regions:       v.Region,
		DeliveryHours: nonNil(v.DeliveryHours),
		Cost:          v.Cost,
		CompletedTime: v.CompletedTime,
	}
}

func orderDtoFromModel(o *order.Order) OrderDto {
	return OrderDto{
		OrderID:       o.ID(),
		Weight:        o.Weight(),
		Regions:       o.Region(),
		DeliveryHours: nonNil(kernel.FormatTimeIntervals(o.DeliveryHours())),
		Cost:          o.Cost(),
		CompletedTime: o.CompletedTime(),
	}
}

func assignResponseFromView(v queries.AssignmentsView) OrderAssignResponse {
	couriers := make([]CouriersGroupOrders, 0, len(v.Couriers))
	for _, c := range v.Couriers {
		groups := make([]GroupOrders, 0, len(c.Groups))
		for _, g := range c.Groups {
			orders := make([]OrderDto, 0, len(g.Orders))
			for _, o := range g.Orders {
				orders = append(orders, orderDtoFromView(o))
			}
			groups = append(groups, GroupOrders{
				GroupOrderID: g.GroupID,
				StartTime:    g.StartsAt,
				Weight:       g.Weight,
				Price:        g.Price,
				Orders:       orders,
			})
		}
		couriers = append(couriers, CouriersGroupOrders{CourierID: c.CourierID, Orders: groups})
	}

	return OrderAssignResponse{
		Date:     v.Date.Format(time.DateOnly),
		Couriers: couriers,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
