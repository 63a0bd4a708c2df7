package commands

import (
	"errors"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new delivery order
// for the authenticated account.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(acct.ID, details)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, recorder)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	accountID string
	details   order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// The details themselves are validated by the order aggregate; the command
// only requires the owning account.
func NewCreateOrderCommand(accountID string, details order.Details) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setAccountID(accountID); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.details = details

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// AccountID returns the identifier of the account creating the order.
func (c CreateOrderCommand) AccountID() string {
	return c.accountID
}

// Details returns the caller-supplied order attributes.
func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setAccountID(accountID string) error {
	if accountID == "" {
		return errs.NewValueIsRequiredError("accountId")
	}

	c.accountID = accountID
	return nil
}
