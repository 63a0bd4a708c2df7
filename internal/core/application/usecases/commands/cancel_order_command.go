package commands

import (
	"errors"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order. Cancellation
// is rejected once the parcel has been picked up; cancelling an already
// cancelled order is an idempotent no-op.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.ID
	accountID string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order owned by the
// given account.
func NewCancelOrderCommand(orderID kernel.ID, accountID string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAccountID(accountID),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

// AccountID returns the identifier of the requesting account.
func (c CancelOrderCommand) AccountID() string {
	return c.accountID
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setAccountID(accountID string) error {
	if accountID == "" {
		return errs.NewValueIsRequiredError("accountId")
	}

	c.accountID = accountID
	return nil
}
