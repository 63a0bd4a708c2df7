package commands

import (
	"context"
	"encoding/json"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/outbox"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/services"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/ports"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/metrics"
)

// EventRecorder turns an order mutation into at most one outbox record.
// It compares the before and after snapshots, builds the event envelope for
// the detected transition and stores it as pending. Handlers call it inside
// their unit of work so the event commits together with the order write.
type EventRecorder struct {
	currency string
}

// NewEventRecorder creates a recorder that stamps payload amounts with the
// given ISO currency code.
func NewEventRecorder(currency string) EventRecorder {
	return EventRecorder{currency: currency}
}

// Record detects the transition between before and after and, if one is
// found, appends the serialized event to the outbox. A mutation that maps to
// no event type is a silent no-op.
func (r EventRecorder) Record(
	ctx context.Context,
	outboxRepo ports.OutboxRepository,
	before, after *order.Order,
	now time.Time,
) error {
	transition, ok := services.DetectTransition(before, after)
	if !ok {
		return nil
	}

	event := services.BuildEvent(transition, after, r.currency, now)
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	now = now.UTC()
	record := &outbox.Record{
		ID:            event.ID,
		OrderID:       after.ID().String(),
		AccountID:     after.UserID(),
		EventType:     string(transition.Type),
		Payload:       payload,
		Status:        outbox.StatusPending,
		NextAttemptAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := outboxRepo.Add(ctx, record); err != nil {
		return err
	}

	metrics.EventsDetected.WithLabelValues(string(transition.Type)).Inc()
	return nil
}
