// Package ports defines the interfaces between the application core and its
// adapters: repositories, the unit of work, the account lookups and the
// outbound webhook client.
package ports

import (
	"context"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add saves a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes an existing order conditionally: the write succeeds only
	// if the stored updated_at still equals expectedUpdatedAt (the value read
	// with the snapshot). A mismatch returns errs.VersionConflictError so
	// the caller can retry against a fresh snapshot. This closes the
	// read-guard-write race between concurrent mutations of the same order.
	Update(ctx context.Context, aggregate *order.Order, expectedUpdatedAt time.Time) error

	// Get retrieves an order by id, or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)
}
