package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrdersCommandIsNotConstructed = errors.New(
	"AssignOrdersCommand must be created via NewAssignOrdersCommand constructor",
)

// AssignOrdersCommand triggers the assignment run for one calendar day. The
// day is taken in the location of the given date, and orders created in that
// day are the ones distributed.
//
// Example:
//
//	cmd, err := NewAssignOrdersCommand(time.Now())
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrAlreadyScheduled) {
//	    log.Println("day already has a schedule")
//	}
type AssignOrdersCommand struct {
	date time.Time

	guard guard.ConstructorGuard
}

// NewAssignOrdersCommand creates a command for the calendar day of date.
func NewAssignOrdersCommand(date time.Time) (AssignOrdersCommand, error) {
	if date.IsZero() {
		return AssignOrdersCommand{}, errs.NewValueIsRequiredError("date")
	}

	return AssignOrdersCommand{
		date:  kernel.StartOfDay(date),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *AssignOrdersCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignOrdersCommandIsNotConstructed,
	)
}

// Date returns midnight of the day to assign.
func (c *AssignOrdersCommand) Date() time.Time {
	return c.date
}
