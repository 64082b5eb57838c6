// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture:
// handlers read tables directly with SQL and return flat read models instead
// of restoring aggregates.
package queries

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// CourierView is the read model of a courier.
type CourierView struct {
	ID           int64
	Type         string
	Regions      []int
	WorkingHours []string
}

// OrderView is the read model of an order. CompletedTime is nil until delivery
// is confirmed.
type OrderView struct {
	ID            int64
	Weight        float64
	Region        int
	DeliveryHours []string
	Cost          float64
	CompletedTime *time.Time
}

const courierColumns = `id, type, regions, working_hours`

const orderColumns = `id, weight, region, delivery_hours, cost, completed_time`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourier(row rowScanner) (CourierView, error) {
	var (
		view    CourierView
		regions pq.Int64Array
		hours   pq.StringArray
	)

	if err := row.Scan(&view.ID, &view.Type, &regions, &hours); err != nil {
		return CourierView{}, err
	}

	view.Regions = make([]int, len(regions))
	for i, r := range regions {
		view.Regions[i] = int(r)
	}
	view.WorkingHours = []string(hours)
	return view, nil
}

func scanOrder(row rowScanner) (OrderView, error) {
	var (
		view      OrderView
		hours     pq.StringArray
		completed sql.NullTime
	)

	if err := row.Scan(&view.ID, &view.Weight, &view.Region, &hours, &view.Cost, &completed); err != nil {
		return OrderView{}, err
	}

	view.DeliveryHours = []string(hours)
	if completed.Valid {
		at := completed.Time
		view.CompletedTime = &at
	}
	return view, nil
}
