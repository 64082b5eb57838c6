package queries

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/schedule"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetAssignmentsQueryHandler joins the stored slots of a day with the details
// of the orders in them.
type GetAssignmentsQueryHandler struct {
	db *gorm.DB
}

func NewGetAssignmentsQueryHandler(db *gorm.DB) GetAssignmentsQueryHandler {
	return GetAssignmentsQueryHandler{db: db}
}

type slotRow struct {
	groupID   uuid.UUID
	courierID int64
	startsAt  time.Time
	orderIDs  []int64
	weight    float64
	price     float64
}

// Handle returns the day's couriers in id order. A day without a schedule, or
// a courier without slots on it, yields an empty list.
func (h GetAssignmentsQueryHandler) Handle(ctx context.Context, query GetAssignmentsQuery) (AssignmentsView, error) {
	if err := query.Validate(); err != nil {
		return AssignmentsView{}, err
	}

	slots, err := h.loadSlots(ctx, query)
	if err != nil {
		return AssignmentsView{}, err
	}

	var ids []int64
	for _, s := range slots {
		ids = append(ids, s.orderIDs...)
	}
	orders, err := h.loadOrders(ctx, ids)
	if err != nil {
		return AssignmentsView{}, err
	}

	view := AssignmentsView{
		Date:     query.date,
		Couriers: make([]CourierAssignmentsView, 0),
	}
	for _, s := range slots {
		group := OrderGroupView{
			GroupID:  s.groupID,
			StartsAt: s.startsAt,
			Weight:   s.weight,
			Price:    s.price,
			Orders:   make([]OrderView, 0, len(s.orderIDs)),
		}
		for _, id := range s.orderIDs {
			o, ok := orders[id]
			if !ok {
				return AssignmentsView{}, fmt.Errorf("slot %s references missing order %d", s.groupID, id)
			}
			group.Orders = append(group.Orders, o)
		}

		last := len(view.Couriers) - 1
		if last < 0 || view.Couriers[last].CourierID != s.courierID {
			view.Couriers = append(view.Couriers, CourierAssignmentsView{CourierID: s.courierID})
			last++
		}
		view.Couriers[last].Groups = append(view.Couriers[last].Groups, group)
	}

	return view, nil
}

func (h GetAssignmentsQueryHandler) loadSlots(ctx context.Context, query GetAssignmentsQuery) ([]slotRow, error) {
	sqlText := `
		SELECT
			ts.group_id,
			ts.courier_id,
			ts.starts_at,
			ts.order_ids,
			ts.weight,
			ts.price
		FROM time_slots ts
		JOIN day_schedules ds ON ds.id = ts.schedule_id
		WHERE ds.date = ?`
	args := []any{query.date.Format(schedule.DateLayout)}
	if query.courierID != nil {
		sqlText += ` AND ts.courier_id = ?`
		args = append(args, *query.courierID)
	}
	sqlText += ` ORDER BY ts.courier_id, ts.slot_index`

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []slotRow
	for rows.Next() {
		var (
			s   slotRow
			ids pq.Int64Array
		)
		if err = rows.Scan(&s.groupID, &s.courierID, &s.startsAt, &ids, &s.weight, &s.price); err != nil {
			return nil, err
		}
		s.orderIDs = []int64(ids)
		slots = append(slots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

func (h GetAssignmentsQueryHandler) loadOrders(ctx context.Context, ids []int64) (map[int64]OrderView, error) {
	orders := make(map[int64]OrderView, len(ids))
	if len(ids) == 0 {
		return orders, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id IN ?
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders[view.ID] = view
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
