package commands_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/application/usecases/commands"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/outbox"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multiStopOrder(t *testing.T) *order.Order {
	t.Helper()
	at := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	first, err := order.NewStop("Kilimani, Nairobi", order.StopTypePickup, order.StopContact{Name: "Amos", Phone: "+254700000002"}, "")
	require.NoError(t, err)
	second, err := order.NewStop("Lavington, Nairobi", order.StopTypeDropoff, order.StopContact{Name: "Grace", Phone: "+254700000003"}, "Gate B")
	require.NoError(t, err)

	details := validDetails()
	details.Stops = []order.Stop{first, second}
	o, err := order.RestoreOrder(kernel.NewOrderID(), testAccountID, order.Restored{
		Details:   details,
		Status:    order.InTransit,
		Driver:    &order.Driver{ID: "drv_1", Name: "Otieno"},
		CreatedAt: at,
		UpdatedAt: at,
	})
	require.NoError(t, err)
	return o
}

func TestUpdateStopStatusCommandHandler_Handle_ArrivalAtSecondStop(t *testing.T) {
	ctx := t.Context()
	stored := multiStopOrder(t)
	stop := stored.Stops()[1]

	cmd, err := commands.NewUpdateStopStatusCommand(stored.ID(), stop.ID(), order.StopArrived)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	expectMutationUoW(uow, orderRepo, outboxRepo)
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()
	orderRepo.On("Update", mock.Anything, stored, mock.AnythingOfType("time.Time")).Return(nil).Once()

	var recorded *outbox.Record
	outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("*outbox.Record")).
		Run(func(args mock.Arguments) { recorded = args.Get(1).(*outbox.Record) }).
		Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateStopStatusCommandHandler(factory, commands.NewEventRecorder("KES"))
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.StopArrived, updated.Stops()[1].Status())

	require.NotNil(t, recorded)
	require.Equal(t, string(services.EventFulfillmentArrivedStop), recorded.EventType)

	var evt services.Event
	require.NoError(t, json.Unmarshal(recorded.Payload, &evt))
	require.NotNil(t, evt.Data.StopIndex)
	require.Equal(t, 1, *evt.Data.StopIndex)
	require.NotNil(t, evt.Data.StopDetails)
	require.Equal(t, "Lavington, Nairobi", evt.Data.StopDetails.Address)
}

func TestUpdateStopStatusCommandHandler_Handle_RejectsBackwardMove(t *testing.T) {
	ctx := t.Context()
	stored := multiStopOrder(t)
	stop := stored.Stops()[0]

	require.NoError(t, stored.UpdateStopStatus(stop.ID(), order.StopCompleted, time.Now()))

	cmd, err := commands.NewUpdateStopStatusCommand(stored.ID(), stop.ID(), order.StopArrived)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	expectMutationUoW(uow, orderRepo, outboxRepo)
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateStopStatusCommandHandler(factory, commands.NewEventRecorder("KES"))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidStatusTransition)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStopStatusCommandHandler_Handle_UnknownStop(t *testing.T) {
	ctx := t.Context()
	stored := multiStopOrder(t)

	cmd, err := commands.NewUpdateStopStatusCommand(stored.ID(), kernel.NewStopID(), order.StopArrived)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	expectMutationUoW(uow, orderRepo, outboxRepo)
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateStopStatusCommandHandler(factory, commands.NewEventRecorder("KES"))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
