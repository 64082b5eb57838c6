package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/order"
)

// ErrCompletionMismatch is returned when a completion names a courier other
// than the assigned one, or repeats a completion with a different time.
var ErrCompletionMismatch = errors.New("completion does not match order state")

// CompleteOrdersCommandHandler confirms deliveries.
//
// Business rules per completion:
//   - the courier and the order must exist
//   - a Created order is attached to the courier and completed
//   - an Assigned order must belong to the courier
//   - a Completed order accepts only an exact repeat
//
// A single failing completion aborts the whole batch.
type CompleteOrdersCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteOrdersCommandHandler creates a handler for delivery confirmation.
func NewCompleteOrdersCommandHandler(uowFactory UoWFactory) CompleteOrdersCommandHandler {
	return CompleteOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the completions and returns the affected orders in request
// order. An order listed twice appears twice.
func (h CompleteOrdersCommandHandler) Handle(ctx context.Context, cmd CompleteOrdersCommand) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	loaded := make(map[int64]*order.Order)
	changed := make([]*order.Order, 0, len(cmd.completions))
	result := make([]*order.Order, 0, len(cmd.completions))

	for i, c := range cmd.completions {
		if _, err := courierRepo.Get(ctx, c.CourierID); err != nil {
			return nil, fmt.Errorf("complete_info[%d]: %w", i, err)
		}

		o, ok := loaded[c.OrderID]
		if !ok {
			var err error
			o, err = orderRepo.Get(ctx, c.OrderID)
			if err != nil {
				return nil, fmt.Errorf("complete_info[%d]: %w", i, err)
			}
			loaded[c.OrderID] = o
			changed = append(changed, o)
		}

		if err := o.Complete(c.CourierID, c.CompleteTime); err != nil {
			if errors.Is(err, order.ErrCompletionConflict) {
				return nil, fmt.Errorf("complete_info[%d]: %w: %w", i, ErrCompletionMismatch, err)
			}
			return nil, fmt.Errorf("complete_info[%d]: %w", i, err)
		}
		result = append(result, o)
	}

	if err := orderRepo.UpdateAll(ctx, changed); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}
