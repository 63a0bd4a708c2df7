package commands

import (
	"errors"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/guard"
)

var ErrUpdateStopStatusCommandIsNotConstructed = errors.New(
	"UpdateStopStatusCommand must be created via NewUpdateStopStatusCommand constructor",
)

// UpdateStopStatusCommand marks progress at one stop of a multi-stop route:
// the driver arrived at the stop or completed it.
type UpdateStopStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	stopID  kernel.ID
	status  order.StopStatus

	guard guard.ConstructorGuard
}

// NewUpdateStopStatusCommand creates a command to move one stop forward.
func NewUpdateStopStatusCommand(orderID, stopID kernel.ID, status order.StopStatus) (UpdateStopStatusCommand, error) {
	cmd := UpdateStopStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStopID(stopID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateStopStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStopStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStopStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being progressed.
func (c UpdateStopStatusCommand) OrderID() kernel.ID {
	return c.orderID
}

// StopID returns the identifier of the stop being progressed.
func (c UpdateStopStatusCommand) StopID() kernel.ID {
	return c.stopID
}

// Status returns the target stop status.
func (c UpdateStopStatusCommand) Status() order.StopStatus {
	return c.status
}

func (c *UpdateStopStatusCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateStopStatusCommand) setStopID(stopID kernel.ID) error {
	if err := stopID.Validate(); err != nil {
		return err
	}

	c.stopID = stopID
	return nil
}

func (c *UpdateStopStatusCommand) setStatus(status order.StopStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
