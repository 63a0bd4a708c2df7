// Package outbox models the persisted event outbox. An event is recorded in
// the same transaction as the order write that produced it, then delivered
// asynchronously by the relay job with bounded retry and a dead-letter
// terminal state.
package outbox

import "time"

// Delivery states of an outbox record.
const (
	// StatusPending means the event awaits its next delivery attempt.
	StatusPending = "pending"

	// StatusDelivered means the subscriber accepted the event.
	StatusDelivered = "delivered"

	// StatusSkipped means the owning account had no matching subscription
	// at relay time. Skipped events are never retried.
	StatusSkipped = "skipped"

	// StatusDeadLetter means the maximum number of attempts was exhausted.
	StatusDeadLetter = "dead_letter"
)

// Record is one event awaiting (or finished with) webhook delivery.
type Record struct {
	ID            string
	OrderID       string
	AccountID     string
	EventType     string
	Payload       []byte
	Status        string
	Attempts      int
	NextAttemptAt time.Time
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
