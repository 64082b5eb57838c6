package courier

import (
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrRegionsAreRequired is returned when a courier is created without any region.
	ErrRegionsAreRequired = errs.NewValueIsRequiredError("regions")
	// ErrWorkingHoursAreRequired is returned when a courier is created without working hours.
	ErrWorkingHoursAreRequired = errs.NewValueIsRequiredError("working hours")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrIDIsAlreadyAssigned is returned when a persisted courier is given a second identity.
	ErrIDIsAlreadyAssigned = errors.New("courier id is already assigned")
)

// Courier is the aggregate root for a delivery worker: a transport Type, an
// ordered list of served regions and the daily working hours.
//
// Region order is meaningful. Only the first Profile.MaxPriorityRegions entries
// are eligible when orders are assigned; the rest are kept for reference.
// Working hours may be disjoint and are kept in the order they were given,
// which is the order slots are laid out in.
//
// Business rules:
//   - Type must be Foot, Bike or Auto
//   - At least one region, every region positive
//   - At least one working interval, every interval constructed
//   - Identity is a storage-assigned positive integer; zero means "not yet saved"
//
// Example usage:
//
//	hours, _ := kernel.ParseTimeIntervals([]string{"09:00-12:00", "14:00-18:00"})
//	c, err := courier.NewCourier(courier.Bike, []int{3, 1, 7}, hours)
//	if err != nil {
//	    // Handle construction error
//	}
//	c.EligibleRegions() // [3 1]
type Courier struct {
	// id is assigned by storage on first save
	id int64
	// courierType selects the capacity profile
	courierType Type
	// regions are served in priority order
	regions []int
	// workingHours are the daily windows the courier is available in
	workingHours []kernel.TimeInterval
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates an unsaved Courier. The id stays zero until the repository
// calls AssignID after insert.
//
// Parameters:
//   - courierType: transport kind (must be valid)
//   - regions: served regions in priority order (non-empty, all positive)
//   - workingHours: daily windows (non-empty, all constructed)
//
// Returns:
//   - *Courier: a courier ready to be persisted
//   - error: every validation failure joined together
func NewCourier(courierType Type, regions []int, workingHours []kernel.TimeInterval) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setType(courierType),
		courier.setRegions(regions),
		courier.setWorkingHours(workingHours),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a persisted Courier. It applies the same checks as
// NewCourier and additionally requires a positive id.
func RestoreCourier(id int64, courierType Type, regions []int, workingHours []kernel.TimeInterval) (*Courier, error) {
	courier, err := NewCourier(courierType, regions, workingHours)
	if err != nil {
		return nil, err
	}

	if err = courier.AssignID(id); err != nil {
		return nil, err
	}

	return courier, nil
}

// Validate rejects couriers not built through NewCourier or RestoreCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// AssignID records the storage identity. It may be called once, with a positive id.
func (c *Courier) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("courier id", id, 1, "max int64")
	}
	if c.id != 0 && c.id != id {
		return fmt.Errorf("%w: %d, got %d", ErrIDIsAlreadyAssigned, c.id, id)
	}
	c.id = id
	return nil
}

// ID returns the storage identity, zero when not yet saved.
func (c *Courier) ID() int64 {
	return c.id
}

// Type returns the courier's transport kind.
func (c *Courier) Type() Type {
	return c.courierType
}

// Regions returns a copy of all served regions in priority order.
func (c *Courier) Regions() []int {
	return slices.Clone(c.regions)
}

// WorkingHours returns a copy of the courier's daily windows.
func (c *Courier) WorkingHours() []kernel.TimeInterval {
	return slices.Clone(c.workingHours)
}

// Profile returns the capacity profile of the courier's type.
func (c *Courier) Profile() (Profile, error) {
	return ProfileFor(c.courierType)
}

// EligibleRegions returns the leading regions the courier accepts orders for,
// at most Profile.MaxPriorityRegions of them.
func (c *Courier) EligibleRegions() []int {
	profile, err := c.Profile()
	if err != nil {
		return nil
	}
	limit := min(profile.MaxPriorityRegions, len(c.regions))
	return slices.Clone(c.regions[:limit])
}

// ServesRegion reports whether region is among EligibleRegions.
func (c *Courier) ServesRegion(region int) bool {
	return slices.Contains(c.EligibleRegions(), region)
}

func (c *Courier) setType(courierType Type) error {
	if err := courierType.Validate(); err != nil {
		return err
	}
	c.courierType = courierType
	return nil
}

func (c *Courier) setRegions(regions []int) error {
	if len(regions) == 0 {
		return ErrRegionsAreRequired
	}
	for _, r := range regions {
		if r <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("regions", fmt.Errorf("%d is not greater than 0", r))
		}
	}
	c.regions = slices.Clone(regions)
	return nil
}

func (c *Courier) setWorkingHours(workingHours []kernel.TimeInterval) error {
	if len(workingHours) == 0 {
		return ErrWorkingHoursAreRequired
	}
	for _, iv := range workingHours {
		if err := iv.Validate(); err != nil {
			return err
		}
	}
	c.workingHours = slices.Clone(workingHours)
	return nil
}
