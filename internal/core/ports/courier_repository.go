// Package ports defines the contracts between the dispatch core and its
// infrastructure: repositories for the three aggregates, the unit of work that
// binds them to one transaction, and the metrics sink of assignment runs.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// CourierRepository defines the persistence contract for courier aggregates.
// Couriers are write-once: there is no update path.
type CourierRepository interface {
	// AddAll persists new couriers in input order and assigns each its
	// storage id. Either every courier is stored or the call fails.
	AddAll(ctx context.Context, couriers []*courier.Courier) error

	// Get retrieves a courier by id.
	// Returns errs.ObjectNotFoundError when no courier has that id.
	Get(ctx context.Context, id int64) (*courier.Courier, error)

	// GetPage returns up to limit couriers ordered by id, skipping offset.
	GetPage(ctx context.Context, offset, limit int) ([]*courier.Courier, error)

	// GetAll returns every courier ordered by id. Assignment uses this order
	// as courier priority.
	//
	// Example:
	//   couriers, err := repo.GetAll(ctx)
	//   if err != nil {
	//       return fmt.Errorf("load couriers: %w", err)
	//   }
	GetAll(ctx context.Context) ([]*courier.Courier, error)
}
