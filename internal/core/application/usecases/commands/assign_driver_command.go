package commands

import (
	"errors"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand represents a dispatch decision: attach a driver to an
// order. Assigning to a pending order allocates; assigning a different
// driver to an already-assigned order reallocates.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	driver  order.Driver

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command to assign a driver to an order.
func NewAssignDriverCommand(orderID kernel.ID, driver order.Driver) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriver(driver),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignDriverCommand) OrderID() kernel.ID {
	return c.orderID
}

// Driver returns the driver being attached to the order.
func (c AssignDriverCommand) Driver() order.Driver {
	return c.driver
}

func (c *AssignDriverCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignDriverCommand) setDriver(driver order.Driver) error {
	if driver.ID == "" {
		return errs.NewValueIsRequiredError("driver.id")
	}

	c.driver = driver
	return nil
}
