package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCompleteOrdersCommandIsNotConstructed = errors.New(
		"CompleteOrdersCommand must be created via NewCompleteOrdersCommand constructor",
	)
	ErrCompletionsAreRequired = errs.NewValueIsRequiredError("complete info")
)

// Completion confirms that a courier delivered an order at a given time.
type Completion struct {
	CourierID    int64
	OrderID      int64
	CompleteTime time.Time
}

// CompleteOrdersCommand confirms a batch of deliveries, all or nothing.
//
// Example:
//
//	cmd, err := NewCompleteOrdersCommand([]Completion{
//	    {CourierID: 3, OrderID: 17, CompleteTime: time.Now()},
//	})
type CompleteOrdersCommand struct { //nolint:recvcheck //using for validation
	completions []Completion

	guard guard.ConstructorGuard
}

// NewCompleteOrdersCommand checks ids and times of every item.
func NewCompleteOrdersCommand(items []Completion) (CompleteOrdersCommand, error) {
	cmd := CompleteOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCompletions(items); err != nil {
		return CompleteOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrdersCommandIsNotConstructed)
}

// Completions returns a copy of the batch in request order.
func (c CompleteOrdersCommand) Completions() []Completion {
	out := make([]Completion, len(c.completions))
	copy(out, c.completions)
	return out
}

func (c *CompleteOrdersCommand) setCompletions(items []Completion) error {
	if len(items) == 0 {
		return ErrCompletionsAreRequired
	}

	var failures []error
	for i, item := range items {
		var itemErrs []error
		if item.CourierID <= 0 {
			itemErrs = append(itemErrs, errs.NewValueIsOutOfRangeError("courier id", item.CourierID, 1, "max int64"))
		}
		if item.OrderID <= 0 {
			itemErrs = append(itemErrs, errs.NewValueIsOutOfRangeError("order id", item.OrderID, 1, "max int64"))
		}
		if item.CompleteTime.IsZero() {
			itemErrs = append(itemErrs, errs.NewValueIsRequiredError("complete time"))
		}
		if len(itemErrs) > 0 {
			failures = append(failures, fmt.Errorf("complete_info[%d]: %w", i, errors.Join(itemErrs...)))
		}
	}
	if len(failures) > 0 {
		return errors.Join(failures...)
	}

	c.completions = append([]Completion(nil), items...)
	return nil
}
