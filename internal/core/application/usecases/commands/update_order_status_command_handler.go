package commands

import (
	"context"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler advances an order's lifecycle status and
// records the matching fulfillment event.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	recorder   EventRecorder
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory, recorder EventRecorder) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle loads the order and moves it to the requested status.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
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

	before := aggregate.Clone()
	expectedUpdatedAt := aggregate.UpdatedAt()

	now := time.Now()
	if err = aggregate.ChangeStatus(cmd.Status(), now); err != nil {
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
