package services

import (
	"cmp"
	"slices"

	"dispatch/internal/core/domain/model/order"
)

// RankOrders returns a new slice with the heaviest orders first. Orders of
// equal weight keep their input order, so a stable input (storage returns
// orders by id) gives a deterministic ranking.
func RankOrders(orders []*order.Order) []*order.Order {
	ranked := slices.Clone(orders)
	slices.SortStableFunc(ranked, func(a, b *order.Order) int {
		return cmp.Compare(b.Weight(), a.Weight())
	})
	return ranked
}
