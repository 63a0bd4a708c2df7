package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/application/usecases/commands"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/outbox"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expectedUpdatedAt time.Time) error {
	args := m.Called(ctx, o, expectedUpdatedAt)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, record *outbox.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*outbox.Record, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Record), args.Error(1)
}

func (m *MockOutboxRepository) MarkDelivered(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkSkipped(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, id string, lastError string, nextAttemptAt time.Time, dead bool) error {
	args := m.Called(ctx, id, lastError, nextAttemptAt, dead)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

const testAccountID = "acct_merchant1"

func validDetails() order.Details {
	return order.Details{
		Pickup:      "Yaya Centre, Nairobi",
		Dropoff:     "Westgate Mall, Nairobi",
		Vehicle:     "Boda Boda",
		ServiceType: "standard",
		Items:       order.Items{Description: "Documents"},
		Recipient:   order.Contact{Name: "Jane", Phone: "+254700000001"},
		Price:       250,
	}
}

func storedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewOrderID(), testAccountID, validDetails(), time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func restoredOrder(t *testing.T, status order.Status, driver *order.Driver) *order.Order {
	t.Helper()
	at := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	o, err := order.RestoreOrder(kernel.NewOrderID(), testAccountID, order.Restored{
		Details:   validDetails(),
		Status:    status,
		Driver:    driver,
		CreatedAt: at,
		UpdatedAt: at,
	})
	require.NoError(t, err)
	return o
}
