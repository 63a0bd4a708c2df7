package commands

import (
	"errors"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand records the payment outcome the payment collaborator
// reported for an order.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	outcome order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a payment outcome.
func NewRecordPaymentCommand(orderID kernel.ID, outcome order.PaymentStatus) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOutcome(outcome),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the paid order.
func (c RecordPaymentCommand) OrderID() kernel.ID {
	return c.orderID
}

// Outcome returns the reported payment outcome.
func (c RecordPaymentCommand) Outcome() order.PaymentStatus {
	return c.outcome
}

func (c *RecordPaymentCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordPaymentCommand) setOutcome(outcome order.PaymentStatus) error {
	if outcome != order.PaymentPaid && outcome != order.PaymentFailed {
		return errs.NewValueIsInvalidError("paymentStatus")
	}

	c.outcome = outcome
	return nil
}
