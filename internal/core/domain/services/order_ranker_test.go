package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestRankOrders(t *testing.T) {
	ids := func(orders []*order.Order) []int64 {
		out := make([]int64, len(orders))
		for i, o := range orders {
			out[i] = o.ID()
		}
		return out
	}

	t.Run("heaviest first with stable ties", func(t *testing.T) {
		orders := []*order.Order{
			newOrder(t, 1, 2, 1, 100, "10:00-11:00"),
			newOrder(t, 2, 5, 1, 100, "10:00-11:00"),
			newOrder(t, 3, 2, 1, 100, "10:00-11:00"),
			newOrder(t, 4, 0.5, 1, 100, "10:00-11:00"),
			newOrder(t, 5, 5, 1, 100, "10:00-11:00"),
		}

		ranked := services.RankOrders(orders)

		assert.Equal(t, []int64{2, 5, 1, 3, 4}, ids(ranked))
		assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(orders), "input must stay untouched")
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, services.RankOrders(nil))
	})
}
