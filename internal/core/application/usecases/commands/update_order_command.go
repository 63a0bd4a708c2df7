package commands

import (
	"errors"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a partial modification of an existing order.
// Which fields may change depends on how far the order has progressed; the
// aggregate enforces those guards when the patch is applied.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.ID
	accountID string
	patch     order.Patch

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to patch an order owned by the
// given account.
func NewUpdateOrderCommand(orderID kernel.ID, accountID string, patch order.Patch) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAccountID(accountID),
	); err != nil {
		return UpdateOrderCommand{}, err
	}
	cmd.patch = patch

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to patch.
func (c UpdateOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

// AccountID returns the identifier of the requesting account.
func (c UpdateOrderCommand) AccountID() string {
	return c.accountID
}

// Patch returns the requested field changes.
func (c UpdateOrderCommand) Patch() order.Patch {
	return c.patch
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setAccountID(accountID string) error {
	if accountID == "" {
		return errs.NewValueIsRequiredError("accountId")
	}

	c.accountID = accountID
	return nil
}
