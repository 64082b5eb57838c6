package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDeliveryHoursAreRequired is returned when an order has no delivery window.
	ErrDeliveryHoursAreRequired = errs.NewValueIsRequiredError("delivery hours")

	// ErrCompletionConflict is the root of every completion that contradicts the
	// order's recorded courier or completion time.
	ErrCompletionConflict = errors.New("order completion conflicts with its current state")

	// ErrIDIsAlreadyAssigned is returned when a persisted order is given a second identity.
	ErrIDIsAlreadyAssigned = errors.New("order id is already assigned")
)

// Order is the aggregate root of a delivery request: a weight, one target region,
// the windows the customer accepts delivery in, and the order's cost.
//
// Order follows these invariants:
//   - Weight and cost are positive
//   - Region is positive
//   - At least one delivery window
//   - A completion time implies a courier
//   - Only assignment and completion mutate an order after creation
//
// Example:
//
//	windows, _ := kernel.ParseTimeIntervals([]string{"10:00-12:00"})
//	o, err := order.NewOrder(2.5, 4, windows, 300, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//	o.Status() // Created
type Order struct {
	// id is assigned by storage on first save
	id int64

	// weight in kilograms
	weight float64

	// region the order is delivered to
	region int

	// deliveryHours are the windows the customer accepts delivery in
	deliveryHours []kernel.TimeInterval

	// cost charged for the order on its own
	cost float64

	// courierID is the assigned courier's ID (nil if unassigned)
	courierID *int64

	// completedTime is set once delivery is confirmed
	completedTime *time.Time

	// createdAt selects the assignment day the order belongs to
	createdAt time.Time

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates an unsaved order in Created status.
//
// Parameters:
//   - weight: order weight in kilograms (must be positive)
//   - region: delivery region (must be positive)
//   - deliveryHours: accepted delivery windows (non-empty, all constructed)
//   - cost: order cost (must be positive)
//   - createdAt: creation instant, decides which day the order is scheduled on
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: every validation failure joined together
func NewOrder(
	weight float64,
	region int,
	deliveryHours []kernel.TimeInterval,
	cost float64,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setWeight(weight),
		order.setRegion(region),
		order.setDeliveryHours(deliveryHours),
		order.setCost(cost),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs a persisted order, including its assignment and
// completion state.
func RestoreOrder(
	id int64,
	weight float64,
	region int,
	deliveryHours []kernel.TimeInterval,
	cost float64,
	courierID *int64,
	completedTime *time.Time,
	createdAt time.Time,
) (*Order, error) {
	order, err := NewOrder(weight, region, deliveryHours, cost, createdAt)
	if err != nil {
		return nil, err
	}

	if completedTime != nil && courierID == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"completed time",
			errors.New("a completed order must have a courier"),
		)
	}

	if err = order.AssignID(id); err != nil {
		return nil, err
	}

	if courierID != nil {
		cID := *courierID
		order.courierID = &cID
	}
	if completedTime != nil {
		at := *completedTime
		order.completedTime = &at
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// AssignID records the storage identity. It may be called once, with a positive id.
func (o *Order) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("order id", id, 1, "max int64")
	}
	if o.id != 0 && o.id != id {
		return fmt.Errorf("%w: %d, got %d", ErrIDIsAlreadyAssigned, o.id, id)
	}
	o.id = id
	return nil
}

// ID returns the storage identity, zero when not yet saved.
func (o *Order) ID() int64 {
	return o.id
}

// Weight returns the order weight in kilograms.
func (o *Order) Weight() float64 {
	return o.weight
}

// Region returns the delivery region.
func (o *Order) Region() int {
	return o.region
}

// DeliveryHours returns a copy of the accepted delivery windows.
func (o *Order) DeliveryHours() []kernel.TimeInterval {
	return slices.Clone(o.deliveryHours)
}

// CanBeDeliveredAt reports whether minute falls inside a delivery window.
func (o *Order) CanBeDeliveredAt(minute int) bool {
	return kernel.AnyContains(o.deliveryHours, minute)
}

// Cost returns the order's standalone cost.
func (o *Order) Cost() float64 {
	return o.cost
}

// CreatedAt returns the creation instant.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Courier returns the assigned courier's ID, nil when unassigned.
func (o *Order) Courier() *int64 {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// CompletedTime returns the delivery confirmation instant, nil when not completed.
func (o *Order) CompletedTime() *time.Time {
	if o.completedTime == nil {
		return nil
	}
	at := *o.completedTime
	return &at
}

// Status derives the lifecycle state from the courier and completion fields.
func (o *Order) Status() Status {
	switch {
	case o.completedTime != nil:
		return Completed
	case o.courierID != nil:
		return Assigned
	default:
		return Created
	}
}

// Assign attaches the order to a courier. Only Created orders can be assigned.
func (o *Order) Assign(courierID int64) error {
	if courierID <= 0 {
		return errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "max int64")
	}

	if err := o.Status().ValidateAssign(); err != nil {
		return err
	}

	o.courierID = &courierID
	return nil
}

// Complete confirms delivery by courierID at the given instant.
//
// Business rules:
//   - Created: the order is attached to courierID and completed
//   - Assigned: courierID must be the assigned courier
//   - Completed: accepted only as an exact repeat (same courier, same instant)
//
// Any contradiction returns an error wrapping ErrCompletionConflict.
func (o *Order) Complete(courierID int64, at time.Time) error {
	if courierID <= 0 {
		return errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "max int64")
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("complete time")
	}

	if o.courierID != nil && *o.courierID != courierID {
		return fmt.Errorf("%w: order %d belongs to courier %d, not %d",
			ErrCompletionConflict, o.id, *o.courierID, courierID)
	}

	if o.Status() == Completed {
		if !o.completedTime.Equal(at) {
			return fmt.Errorf("%w: order %d was completed at %s",
				ErrCompletionConflict, o.id, o.completedTime.Format(time.RFC3339))
		}
		return nil
	}

	if err := o.Status().ValidateComplete(); err != nil {
		return err
	}

	o.courierID = &courierID
	o.completedTime = &at
	return nil
}

func (o *Order) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid", fmt.Errorf("%g is not greater than 0", weight))
	}
	o.weight = weight
	return nil
}

func (o *Order) setRegion(region int) error {
	if region <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("region is invalid", fmt.Errorf("%d is not greater than 0", region))
	}
	o.region = region
	return nil
}

func (o *Order) setDeliveryHours(deliveryHours []kernel.TimeInterval) error {
	if len(deliveryHours) == 0 {
		return ErrDeliveryHoursAreRequired
	}
	for _, iv := range deliveryHours {
		if err := iv.Validate(); err != nil {
			return err
		}
	}
	o.deliveryHours = slices.Clone(deliveryHours)
	return nil
}

func (o *Order) setCost(cost float64) error {
	if cost <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("cost is invalid", fmt.Errorf("%g is not greater than 0", cost))
	}
	o.cost = cost
	return nil
}
