package commands

import (
	"context"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

// CancelOrderCommandHandler handles order cancellation. A successful
// cancellation emits an order.cancelled event through the outbox;
// re-cancelling emits nothing.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	recorder   EventRecorder
}

// NewCancelOrderCommandHandler creates a handler for cancellation operations.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, recorder EventRecorder) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle loads the order, verifies ownership and cancels it.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if aggregate.UserID() != cmd.AccountID() {
		return nil, ErrOrderNotOwned
	}

	// Re-cancelling changes nothing; return the order as is without a write.
	if aggregate.Status() == order.Cancelled {
		return aggregate, nil
	}

	before := aggregate.Clone()
	expectedUpdatedAt := aggregate.UpdatedAt()

	now := time.Now()
	if err = aggregate.Cancel(now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate, expectedUpdatedAt); err != nil {
		return nil, err
	}

	if err = h.recorder.Record(ctx, uow.OutboxRepository(), before, aggregate, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
