package postgres_test

import (
	"context"
	"testing"
	"time"

	pgadapter "github.com/CosmicQuant/tumafast-sub002/internal/adapters/out/postgres"
	"github.com/CosmicQuant/tumafast-sub002/internal/adapters/out/postgres/orderrepo"
	"github.com/CosmicQuant/tumafast-sub002/internal/adapters/out/postgres/outboxrepo"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/outbox"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that the order write and the
// outbox insert share one transaction: both commit or neither does.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *pgadapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &outboxrepo.RecordDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, webhook_outbox").Error)
	suite.factory = pgadapter.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewOrderID(), "acct_merchant1", order.Details{
		Pickup:      "Yaya Centre, Nairobi",
		Dropoff:     "Westgate Mall, Nairobi",
		Vehicle:     "Boda Boda",
		ServiceType: "standard",
		Items:       order.Items{Description: "Documents"},
		Recipient:   order.Contact{Name: "Jane", Phone: "+254700000001"},
		Price:       250,
	}, time.Now())
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newRecord(orderID string) *outbox.Record {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &outbox.Record{
		ID:            kernel.NewEventID().String(),
		OrderID:       orderID,
		AccountID:     "acct_merchant1",
		EventType:     "order.cancelled",
		Payload:       []byte(`{"object":"event"}`),
		Status:        outbox.StatusPending,
		NextAttemptAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndEvent() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, suite.newRecord(o.ID().String())))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), loaded.ID())

	due, err := outboxrepo.NewGormOutboxRepository(suite.db).ListDue(ctx, time.Now(), 10)
	suite.Require().NoError(err)
	suite.Len(due, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsBoth() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, suite.newRecord(o.ID().String())))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, o.ID())
	suite.Require().Error(err)

	due, err := outboxrepo.NewGormOutboxRepository(suite.db).ListDue(ctx, time.Now(), 10)
	suite.Require().NoError(err)
	suite.Empty(due)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Require().Error(uow.Commit(context.Background()))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
