package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// AddAll persists new orders in input order and assigns each its storage id.
	AddAll(ctx context.Context, orders []*order.Order) error

	// Get retrieves an order by id.
	// Returns errs.ObjectNotFoundError when no order has that id.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetPage returns up to limit orders ordered by id, skipping offset.
	GetPage(ctx context.Context, offset, limit int) ([]*order.Order, error)

	// GetUnassignedCreatedBetween returns orders without a courier created in
	// [from, to), ordered by id, with their rows locked for the rest of the
	// transaction.
	GetUnassignedCreatedBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error)

	// UpdateAll writes back the courier and completion state of existing orders.
	// Returns errs.ObjectNotFoundError if any order is missing.
	UpdateAll(ctx context.Context, orders []*order.Order) error
}
