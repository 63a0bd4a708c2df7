// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every mutating command follows the same shape: validate the command, open a
// unit of work, mutate the order aggregate, record any lifecycle event into
// the outbox, commit.
package commands

import (
	"context"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// The outbox repository lives behind the same unit of work as the order
// repository so the event row commits with the order row or not at all.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// UoW manages a transaction spanning the order and outbox tables.
	UoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
