package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// CreateOrdersCommandHandler stores a batch of new orders stamped with the
// current time. The stamp decides which day the orders are assigned on.
type CreateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCreateOrdersCommandHandler creates a handler for batch order creation.
// A nil now falls back to time.Now.
func NewCreateOrdersCommandHandler(uowFactory OrderUoWFactory, now func() time.Time) CreateOrdersCommandHandler {
	if now == nil {
		now = time.Now
	}
	return CreateOrdersCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle builds every order, then persists them in one transaction.
func (h CreateOrdersCommandHandler) Handle(ctx context.Context, cmd CreateOrdersCommand) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	createdAt := h.now()
	orders := make([]*order.Order, 0, cmd.Len())
	for i, d := range cmd.orders {
		o, err := order.NewOrder(d.weight, d.region, d.deliveryHours, d.cost, createdAt)
		if err != nil {
			return nil, fmt.Errorf("orders[%d]: %w", i, err)
		}
		orders = append(orders, o)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().AddAll(ctx, orders); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return orders, nil
}
