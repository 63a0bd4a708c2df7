// Package queries contains the read side of the CQRS split: order lookups
// and quote calculations that never modify state.
package queries

import (
	"errors"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)

	// ErrOrderNotOwned means the order exists but belongs to a different
	// account. Kept distinct from not-found so the transport can answer
	// with a permission error.
	ErrOrderNotOwned = errors.New("order does not belong to the requesting account")
)

// GetOrderQuery retrieves one order scoped to the requesting account.
type GetOrderQuery struct {
	orderID   kernel.ID
	accountID string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order owned by the given account.
func NewGetOrderQuery(orderID kernel.ID, accountID string) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if accountID == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("accountId")
	}

	return GetOrderQuery{
		orderID:   orderID,
		accountID: accountID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.ID {
	return q.orderID
}

// AccountID returns the identifier of the requesting account.
func (q GetOrderQuery) AccountID() string {
	return q.accountID
}
