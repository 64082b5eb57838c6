package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
)

// CreateCouriersCommandHandler stores a batch of new couriers.
//
// Example:
//
//	handler := NewCreateCouriersCommandHandler(uowFactory)
//	couriers, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("courier creation failed: %w", err)
//	}
//	fmt.Println(couriers[0].ID())
type CreateCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewCreateCouriersCommandHandler creates a handler for batch courier creation.
func NewCreateCouriersCommandHandler(uowFactory CourierUoWFactory) CreateCouriersCommandHandler {
	return CreateCouriersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds every courier, then persists them in one transaction.
// Returns the stored couriers with their ids, in command order.
func (h CreateCouriersCommandHandler) Handle(ctx context.Context, cmd CreateCouriersCommand) ([]*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, cmd.Len())
	for i, d := range cmd.couriers {
		c, err := courier.NewCourier(d.courierType, d.regions, d.workingHours)
		if err != nil {
			return nil, fmt.Errorf("couriers[%d]: %w", i, err)
		}
		couriers = append(couriers, c)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CourierRepository().AddAll(ctx, couriers); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return couriers, nil
}
