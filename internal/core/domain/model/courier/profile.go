package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Profile holds the capacity and pricing parameters shared by every courier of
// one Type. Profiles are plain values: callers receive copies and cannot alter
// the table.
type Profile struct {
	// MaxWeight is the heaviest total a single slot may carry, in kilograms.
	MaxWeight float64

	// MaxOrdersPerSlot caps how many orders one slot batches together.
	MaxOrdersPerSlot int

	// MaxPriorityRegions is how many leading entries of the courier's region
	// list are eligible for assignment.
	MaxPriorityRegions int

	// FirstOrderMinutes is the time budget of the first order in a slot.
	FirstOrderMinutes int

	// NextOrderMinutes is the time budget of each further order in a slot.
	NextOrderMinutes int

	// AdditionalOrderPriceFactor scales the cost of every order after the first
	// one in a slot.
	AdditionalOrderPriceFactor float64

	// SalaryCoefficient multiplies completed order cost into courier earnings.
	SalaryCoefficient int

	// RatingCoefficient multiplies completed orders per hour into courier rating.
	RatingCoefficient int
}

// ProfileFor returns the capacity profile of t.
//
// Returns:
//   - Profile: the parameters for Foot, Bike or Auto
//   - error: ValueIsInvalidError for Unknown or an out-of-range Type
//
// Example:
//
//	p, err := courier.ProfileFor(courier.Bike)
//	if err != nil {
//	    return err
//	}
//	p.SlotSpanMinutes() // 12 + 8*3 = 36
func ProfileFor(t Type) (Profile, error) {
	switch t {
	case Foot:
		return Profile{
			MaxWeight:                  10,
			MaxOrdersPerSlot:           2,
			MaxPriorityRegions:         1,
			FirstOrderMinutes:          25,
			NextOrderMinutes:           10,
			AdditionalOrderPriceFactor: 0.8,
			SalaryCoefficient:          2,
			RatingCoefficient:          3,
		}, nil
	case Bike:
		return Profile{
			MaxWeight:                  20,
			MaxOrdersPerSlot:           4,
			MaxPriorityRegions:         2,
			FirstOrderMinutes:          12,
			NextOrderMinutes:           8,
			AdditionalOrderPriceFactor: 0.8,
			SalaryCoefficient:          3,
			RatingCoefficient:          2,
		}, nil
	case Auto:
		return Profile{
			MaxWeight:                  40,
			MaxOrdersPerSlot:           7,
			MaxPriorityRegions:         3,
			FirstOrderMinutes:          8,
			NextOrderMinutes:           4,
			AdditionalOrderPriceFactor: 0.8,
			SalaryCoefficient:          4,
			RatingCoefficient:          1,
		}, nil
	case Unknown:
	}

	return Profile{}, errs.NewValueIsInvalidErrorWithCause(
		"courier type is invalid",
		fmt.Errorf("no capacity profile for %s (%d)", t, t),
	)
}

// SlotSpanMinutes is the length of one slot: the first order budget plus one
// next-order budget for every further order the slot can hold.
func (p Profile) SlotSpanMinutes() int {
	return p.FirstOrderMinutes + p.NextOrderMinutes*(p.MaxOrdersPerSlot-1)
}

// OrderPrice is what an order of cost adds to a slot that already holds
// position orders. The first order (position 0) is charged in full.
func (p Profile) OrderPrice(cost float64, position int) float64 {
	if position == 0 {
		return cost
	}
	return cost * p.AdditionalOrderPriceFactor
}
