package commands

import (
	"context"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

// AssignDriverCommandHandler attaches a driver to an order. The first
// assignment emits fulfillment.allocated; swapping drivers on an assigned
// order emits fulfillment.reallocated.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	recorder   EventRecorder
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(uowFactory UoWFactory, recorder EventRecorder) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle loads the order and assigns the driver.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (*order.Order, error) {
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
	if err = aggregate.AssignDriver(cmd.Driver(), now); err != nil {
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
