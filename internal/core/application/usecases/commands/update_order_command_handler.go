package commands

import (
	"context"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler applies guarded partial updates to an order.
//
// The write is conditional on the updated_at value read with the snapshot.
// Two concurrent patches can both pass their status guards against the same
// snapshot; the conditional write lets only the first commit and surfaces a
// version conflict to the loser, who is expected to retry against the fresh
// state.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	recorder   EventRecorder
}

// NewUpdateOrderCommandHandler creates a handler for order patch operations.
func NewUpdateOrderCommandHandler(uowFactory UoWFactory, recorder EventRecorder) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// UpdateOrderResult reports what a successful patch changed.
type UpdateOrderResult struct {
	Order        *order.Order
	Changes      []string
	PriceUpdated bool
}

// Handle loads the order, verifies ownership, applies the patch under the
// aggregate's status guards and writes the result conditionally. A detected
// lifecycle event is recorded to the outbox in the same transaction.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (UpdateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return UpdateOrderResult{}, err
	}
	if aggregate.UserID() != cmd.AccountID() {
		return UpdateOrderResult{}, ErrOrderNotOwned
	}

	before := aggregate.Clone()
	expectedUpdatedAt := aggregate.UpdatedAt()

	now := time.Now()
	result, err := aggregate.ApplyPatch(cmd.Patch(), now)
	if err != nil {
		return UpdateOrderResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate, expectedUpdatedAt); err != nil {
		return UpdateOrderResult{}, err
	}

	if err = h.recorder.Record(ctx, uow.OutboxRepository(), before, aggregate, now); err != nil {
		return UpdateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateOrderResult{}, err
	}

	return UpdateOrderResult{
		Order:        aggregate,
		Changes:      result.Changes,
		PriceUpdated: result.PriceUpdated,
	}, nil
}
