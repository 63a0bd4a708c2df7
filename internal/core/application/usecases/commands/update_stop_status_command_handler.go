package commands

import (
	"context"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

// UpdateStopStatusCommandHandler records per-stop progress and emits the
// matching fulfillment.arrived_stop or fulfillment.completed_stop event.
type UpdateStopStatusCommandHandler struct {
	uowFactory UoWFactory
	recorder   EventRecorder
}

// NewUpdateStopStatusCommandHandler creates a handler for stop progress updates.
func NewUpdateStopStatusCommandHandler(uowFactory UoWFactory, recorder EventRecorder) UpdateStopStatusCommandHandler {
	return UpdateStopStatusCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle loads the order and advances the named stop.
func (h *UpdateStopStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStopStatusCommand) (*order.Order, error) {
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
	if err = aggregate.UpdateStopStatus(cmd.StopID(), cmd.Status(), now); err != nil {
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
