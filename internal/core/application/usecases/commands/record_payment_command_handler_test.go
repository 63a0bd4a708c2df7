package commands_test

import (
	"testing"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/application/usecases/commands"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/outbox"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordPaymentCommandHandler_Handle_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		outcome order.PaymentStatus
		want    services.EventType
	}{
		{"succeeded", order.PaymentPaid, services.EventPaymentSucceeded},
		{"failed", order.PaymentFailed, services.EventPaymentFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			stored := restoredOrder(t, order.Delivered, &order.Driver{ID: "drv_1"})

			cmd, err := commands.NewRecordPaymentCommand(stored.ID(), tt.outcome)
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

			h := commands.NewRecordPaymentCommandHandler(factory, commands.NewEventRecorder("KES"))
			updated, err := h.Handle(ctx, cmd)
			require.NoError(t, err)
			require.Equal(t, tt.outcome, updated.PaymentStatus())
			require.NotNil(t, recorded)
			require.Equal(t, string(tt.want), recorded.EventType)
		})
	}
}

func TestRecordPaymentCommand_RejectsUnknownOutcome(t *testing.T) {
	stored := storedOrder(t)
	_, err := commands.NewRecordPaymentCommand(stored.ID(), order.PaymentStatus("REFUNDED"))
	require.Error(t, err)
}
