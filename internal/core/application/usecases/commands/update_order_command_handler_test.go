package commands_test

import (
	"encoding/json"
	"testing"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/application/usecases/commands"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/outbox"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/services"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func expectMutationUoW(uow *MockUoW, orderRepo *MockOrderRepository, outboxRepo *MockOutboxRepository) {
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("OutboxRepository").Return(outboxRepo).Maybe()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
}

func TestUpdateOrderCommandHandler_Handle_RouteChangeRecalculatesPrice(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t)
	expected := stored.UpdatedAt()

	cmd, err := commands.NewUpdateOrderCommand(stored.ID(), testAccountID, order.Patch{
		Dropoff: strPtr("Two Rivers Mall, Nairobi"),
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	expectMutationUoW(uow, orderRepo, outboxRepo)
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()
	orderRepo.On("Update", mock.Anything, stored, expected).Return(nil).Once()

	var recorded *outbox.Record
	outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("*outbox.Record")).
		Run(func(args mock.Arguments) { recorded = args.Get(1).(*outbox.Record) }).
		Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, commands.NewEventRecorder("KES"))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// 250 * 1.15 rounded.
	require.Equal(t, 288, result.Order.Price())
	require.True(t, result.PriceUpdated)
	require.Contains(t, result.Changes, "dropoff")
	require.Contains(t, result.Changes, "price")

	require.NotNil(t, recorded)
	require.Equal(t, string(services.EventOrderUpdated), recorded.EventType)
	require.Equal(t, outbox.StatusPending, recorded.Status)
	require.Equal(t, testAccountID, recorded.AccountID)

	var evt services.Event
	require.NoError(t, json.Unmarshal(recorded.Payload, &evt))
	require.Equal(t, 288, evt.Data.Price)
	require.Equal(t, "KES", evt.Data.Currency)

	orderRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_NotOwned(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t)

	cmd, err := commands.NewUpdateOrderCommand(stored.ID(), "acct_other", order.Patch{
		Dropoff: strPtr("Two Rivers Mall, Nairobi"),
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	expectMutationUoW(uow, orderRepo, outboxRepo)
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, commands.NewEventRecorder("KES"))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderNotOwned)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_PickupLockedAfterAssignment(t *testing.T) {
	ctx := t.Context()
	driver := &order.Driver{ID: "drv_1", Name: "Otieno"}
	stored := restoredOrder(t, order.DriverAssigned, driver)

	cmd, err := commands.NewUpdateOrderCommand(stored.ID(), testAccountID, order.Patch{
		Pickup: strPtr("Sarit Centre, Nairobi"),
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	expectMutationUoW(uow, orderRepo, outboxRepo)
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, commands.NewEventRecorder("KES"))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrModificationForbidden)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	outboxRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t)
	expected := stored.UpdatedAt()

	cmd, err := commands.NewUpdateOrderCommand(stored.ID(), testAccountID, order.Patch{
		Dropoff: strPtr("Two Rivers Mall, Nairobi"),
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	expectMutationUoW(uow, orderRepo, outboxRepo)
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()
	orderRepo.On("Update", mock.Anything, stored, expected).
		Return(errs.NewVersionConflictError("orderId", stored.ID().String())).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, commands.NewEventRecorder("KES"))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrVersionConflict)
	outboxRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_NoChanges(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t)

	cmd, err := commands.NewUpdateOrderCommand(stored.ID(), testAccountID, order.Patch{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	expectMutationUoW(uow, orderRepo, outboxRepo)
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, commands.NewEventRecorder("KES"))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrNoChanges)
}
