package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrdersCommandIsNotConstructed = errors.New(
		"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
	)
	ErrOrdersAreRequired = errs.NewValueIsRequiredError("orders")
)

// OrderData is the raw description of one order to create.
type OrderData struct {
	Weight        float64
	Region        int
	DeliveryHours []string
	Cost          float64
}

type orderDraft struct {
	weight        float64
	region        int
	deliveryHours []kernel.TimeInterval
	cost          float64
}

// CreateOrdersCommand registers a batch of orders, all or nothing.
type CreateOrdersCommand struct { //nolint:recvcheck //using for validation
	orders []orderDraft

	guard guard.ConstructorGuard
}

// NewCreateOrdersCommand parses the delivery hours of every item.
func NewCreateOrdersCommand(items []OrderData) (CreateOrdersCommand, error) {
	cmd := CreateOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrders(items); err != nil {
		return CreateOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

// Len is the number of orders in the batch.
func (c CreateOrdersCommand) Len() int {
	return len(c.orders)
}

func (c *CreateOrdersCommand) setOrders(items []OrderData) error {
	if len(items) == 0 {
		return ErrOrdersAreRequired
	}

	drafts := make([]orderDraft, 0, len(items))
	var failures []error
	for i, item := range items {
		hours, err := kernel.ParseTimeIntervals(item.DeliveryHours)
		if err != nil {
			failures = append(failures, fmt.Errorf("orders[%d]: %w", i, err))
			continue
		}

		drafts = append(drafts, orderDraft{
			weight:        item.Weight,
			region:        item.Region,
			deliveryHours: hours,
			cost:          item.Cost,
		})
	}
	if len(failures) > 0 {
		return errors.Join(failures...)
	}

	c.orders = drafts
	return nil
}
