package outboxrepo

import (
	"context"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/outbox"

	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add records a pending event.
func (r *GormOutboxRepository) Add(ctx context.Context, record *outbox.Record) error {
	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListDue returns up to limit pending records whose next attempt time has
// passed, oldest first. Delivery order across orders is best effort; order
// within one aggregate follows creation time.
func (r *GormOutboxRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*outbox.Record, error) {
	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", outbox.StatusPending, now.UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*outbox.Record, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, toDomain(dto))
	}
	return records, nil
}

// MarkDelivered finalizes a record after a successful delivery.
func (r *GormOutboxRepository) MarkDelivered(ctx context.Context, id string) error {
	return r.mark(ctx, id, map[string]any{
		"status":     outbox.StatusDelivered,
		"last_error": "",
	})
}

// MarkSkipped finalizes a record whose account had no matching subscription.
func (r *GormOutboxRepository) MarkSkipped(ctx context.Context, id string) error {
	return r.mark(ctx, id, map[string]any{
		"status": outbox.StatusSkipped,
	})
}

// MarkFailed records a failed attempt, either scheduling a retry or moving
// the record to the dead-letter state.
func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id string, lastError string, nextAttemptAt time.Time, dead bool) error {
	status := outbox.StatusPending
	if dead {
		status = outbox.StatusDeadLetter
	}

	return r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":          status,
			"attempts":        gorm.Expr("attempts + 1"),
			"next_attempt_at": nextAttemptAt.UTC(),
			"last_error":      lastError,
			"updated_at":      time.Now().UTC(),
		}).Error
}

func (r *GormOutboxRepository) mark(ctx context.Context, id string, fields map[string]any) error {
	fields["updated_at"] = time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("id = ?", id).
		Updates(fields).Error
}
