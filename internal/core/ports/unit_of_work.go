package ports

import "context"

// UnitOfWork coordinates a database transaction spanning the order write
// and the outbox insert, so an event is recorded if and only if the order
// change that produced it commits.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	OutboxRepository() OutboxRepository
}

// UnitOfWorkFactory creates a fresh unit of work per business operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
