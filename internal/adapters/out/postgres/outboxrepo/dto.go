// Package outboxrepo persists the webhook outbox: events detected during an
// order write wait here, inside the same database, until the relay job
// delivers them.
package outboxrepo

import (
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/outbox"
)

// RecordDTO represents one outbound event row. Timestamps are managed
// explicitly to keep parity with the orders table.
type RecordDTO struct {
	ID        string `gorm:"type:text;primaryKey"`
	OrderID   string `gorm:"type:text;index"`
	AccountID string `gorm:"type:text;index"`
	EventType string `gorm:"type:text"`
	Payload   string `gorm:"type:jsonb"`

	Status        string    `gorm:"type:text;index:idx_outbox_due"`
	Attempts      int
	NextAttemptAt time.Time `gorm:"index:idx_outbox_due"`
	LastError     string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName overrides GORM's default naming convention.
func (RecordDTO) TableName() string {
	return "webhook_outbox"
}

func fromDomain(record *outbox.Record) RecordDTO {
	return RecordDTO{
		ID:            record.ID,
		OrderID:       record.OrderID,
		AccountID:     record.AccountID,
		EventType:     record.EventType,
		Payload:       string(record.Payload),
		Status:        record.Status,
		Attempts:      record.Attempts,
		NextAttemptAt: record.NextAttemptAt,
		LastError:     record.LastError,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func toDomain(dto RecordDTO) *outbox.Record {
	return &outbox.Record{
		ID:            dto.ID,
		OrderID:       dto.OrderID,
		AccountID:     dto.AccountID,
		EventType:     dto.EventType,
		Payload:       []byte(dto.Payload),
		Status:        dto.Status,
		Attempts:      dto.Attempts,
		NextAttemptAt: dto.NextAttemptAt,
		LastError:     dto.LastError,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	}
}
