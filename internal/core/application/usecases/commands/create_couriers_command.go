package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateCouriersCommandIsNotConstructed = errors.New(
		"CreateCouriersCommand must be created via NewCreateCouriersCommand constructor",
	)
	ErrCouriersAreRequired = errs.NewValueIsRequiredError("couriers")
)

// CourierData is the raw description of one courier to create.
type CourierData struct {
	Type         string
	Regions      []int
	WorkingHours []string
}

type courierDraft struct {
	courierType  courier.Type
	regions      []int
	workingHours []kernel.TimeInterval
}

// CreateCouriersCommand registers a batch of couriers. The batch is stored
// entirely or not at all.
//
// Example:
//
//	cmd, err := NewCreateCouriersCommand([]CourierData{
//	    {Type: "BIKE", Regions: []int{1, 4}, WorkingHours: []string{"09:00-13:00"}},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid couriers: %w", err)
//	}
//	couriers, err := handler.Handle(ctx, cmd)
type CreateCouriersCommand struct { //nolint:recvcheck //using for validation
	couriers []courierDraft

	guard guard.ConstructorGuard
}

// NewCreateCouriersCommand parses types and working hours of every item.
// Failures of all items are joined, each prefixed with the item position.
func NewCreateCouriersCommand(items []CourierData) (CreateCouriersCommand, error) {
	cmd := CreateCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCouriers(items); err != nil {
		return CreateCouriersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCouriersCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouriersCommandIsNotConstructed)
}

// Len is the number of couriers in the batch.
func (c CreateCouriersCommand) Len() int {
	return len(c.couriers)
}

func (c *CreateCouriersCommand) setCouriers(items []CourierData) error {
	if len(items) == 0 {
		return ErrCouriersAreRequired
	}

	drafts := make([]courierDraft, 0, len(items))
	var failures []error
	for i, item := range items {
		courierType, typeErr := courier.ParseType(item.Type)
		hours, hoursErr := kernel.ParseTimeIntervals(item.WorkingHours)
		if err := errors.Join(typeErr, hoursErr); err != nil {
			failures = append(failures, fmt.Errorf("couriers[%d]: %w", i, err))
			continue
		}

		drafts = append(drafts, courierDraft{
			courierType:  courierType,
			regions:      item.Regions,
			workingHours: hours,
		})
	}
	if len(failures) > 0 {
		return errors.Join(failures...)
	}

	c.couriers = drafts
	return nil
}
