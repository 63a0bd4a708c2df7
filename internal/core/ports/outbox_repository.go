package ports

import (
	"context"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/outbox"
)

// OutboxRepository persists outbound events. Add runs inside the order
// write's transaction; the remaining methods are used by the relay job.
type OutboxRepository interface {
	// Add records a pending event.
	Add(ctx context.Context, record *outbox.Record) error

	// ListDue returns up to limit pending records whose next attempt time
	// has passed, oldest first.
	ListDue(ctx context.Context, now time.Time, limit int) ([]*outbox.Record, error)

	// MarkDelivered finalizes a record after a successful delivery.
	MarkDelivered(ctx context.Context, id string) error

	// MarkSkipped finalizes a record whose account had no matching
	// subscription at relay time.
	MarkSkipped(ctx context.Context, id string) error

	// MarkFailed records a failed attempt. When dead is false the record
	// stays pending and becomes due again at nextAttemptAt; when dead is
	// true it moves to the dead-letter state and is never retried.
	MarkFailed(ctx context.Context, id string, lastError string, nextAttemptAt time.Time, dead bool) error
}
