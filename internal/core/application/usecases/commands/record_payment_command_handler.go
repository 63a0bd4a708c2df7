package commands

import (
	"context"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

// RecordPaymentCommandHandler stores a payment outcome on the order and
// emits payment.succeeded or payment.failed.
type RecordPaymentCommandHandler struct {
	uowFactory UoWFactory
	recorder   EventRecorder
}

// NewRecordPaymentCommandHandler creates a handler for payment outcomes.
func NewRecordPaymentCommandHandler(uowFactory UoWFactory, recorder EventRecorder) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle loads the order and records the payment outcome.
func (h *RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (*order.Order, error) {
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
	if err = aggregate.MarkPaymentStatus(cmd.Outcome(), now); err != nil {
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
