package queries

import (
	"context"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

// OrderReader is the read-only slice of the order repository the query
// side needs. It runs outside any transaction.
type OrderReader interface {
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)
}

// GetOrderQueryHandler retrieves one order and enforces account scoping:
// an order belonging to another account is reported as not owned, never
// silently returned.
type GetOrderQueryHandler struct {
	reader OrderReader
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle executes the lookup.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if aggregate.UserID() != query.AccountID() {
		return nil, ErrOrderNotOwned
	}

	return aggregate, nil
}
