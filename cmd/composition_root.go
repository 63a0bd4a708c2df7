package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/CosmicQuant/tumafast-sub002/internal/adapters/out/postgres"
	"github.com/CosmicQuant/tumafast-sub002/internal/adapters/out/postgres/accountrepo"
	"github.com/CosmicQuant/tumafast-sub002/internal/adapters/out/webhook"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/application/usecases/commands"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/application/usecases/queries"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/ports"
	"github.com/CosmicQuant/tumafast-sub002/internal/jobs"
)

// CompositionRoot wires adapters to use cases. All handlers share the same
// gorm connection pool; each business operation gets its own unit of work.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	accountRepo *accountrepo.GormAccountRepository
	recorder    commands.EventRecorder
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		accountRepo: accountrepo.NewGormAccountRepository(gormDB),
		recorder:    commands.NewEventRecorder(config.Currency),
		logger:      logger,
	}
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.commandUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.commandUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.commandUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.commandUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateUpdateStopStatusCommandHandler() commands.UpdateStopStatusCommandHandler {
	return commands.NewUpdateStopStatusCommandHandler(c.commandUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.commandUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateQuoteQueryHandler() queries.QuoteQueryHandler {
	return queries.NewQuoteQueryHandler(c.config.Currency)
}

func (c *CompositionRoot) AccountResolver() ports.AccountResolver {
	return c.accountRepo
}

func (c *CompositionRoot) CreateWebhookRelayJob() *jobs.WebhookRelayJob {
	client := webhook.NewClient(c.config.WebhookTimeout, c.logger)
	return jobs.NewWebhookRelayJob(
		c.uowFactory.Create().OutboxRepository(),
		c.accountRepo,
		client,
		jobs.RelayConfig{
			Schedule:    c.config.RelaySchedule,
			BatchSize:   c.config.RelayBatchSize,
			MaxAttempts: c.config.RelayMaxAttempts,
			BackoffBase: c.config.RelayBackoffBase,
			TickTimeout: c.config.RelayTickTimeout,
		},
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateWebhookRelayJob())
}

// FuncUoWFactory adapts a closure to the commands.UoWFactory interface.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
