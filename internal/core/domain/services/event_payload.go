package services

import (
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

// Event is the versioned envelope delivered to webhook subscribers.
type Event struct {
	ID      string    `json:"id"`
	Object  string    `json:"object"`
	Type    EventType `json:"type"`
	Created int64     `json:"created"`
	Data    EventData `json:"data"`
}

// EventData is the payload inside the envelope: an order summary plus
// conditional enrichment. Amount and Price carry the same value; older
// integrations read amount, newer ones read price.
type EventData struct {
	OrderID     string            `json:"id"`
	Status      string            `json:"status"`
	Amount      int               `json:"amount"`
	Price       int               `json:"price"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata"`
	StopIndex   *int              `json:"stop_index,omitempty"`
	StopDetails *StopDetails      `json:"stop_details,omitempty"`
	Driver      *DriverDetails    `json:"driver,omitempty"`
}

// StopDetails enriches per-stop events with the matched stop's address and
// contact. Missing contact fields are empty strings, never omitted.
type StopDetails struct {
	Address string `json:"address"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
}

// DriverDetails enriches any event on a driver-assigned order.
type DriverDetails struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Plate string `json:"plate"`
}

// BuildEvent constructs the event envelope for a detected transition from
// the new snapshot. It never fails: optional fields that are missing on the
// order become empty strings.
//
// Enrichment is additive and independent: stop events gain stop_index and
// stop_details from the matched stop. Any event, including order.cancelled
// and payment events, gains driver details when the new
// snapshot has an assigned driver.
func BuildEvent(t Transition, after *order.Order, currency string, now time.Time) Event {
	metadata := after.Metadata()
	if metadata == nil {
		metadata = map[string]string{}
	}

	data := EventData{
		OrderID:  after.ID().String(),
		Status:   after.Status().String(),
		Amount:   after.Price(),
		Price:    after.Price(),
		Currency: currency,
		Metadata: metadata,
	}

	if t.HasStop {
		if stops := after.Stops(); t.StopIndex < len(stops) {
			s := stops[t.StopIndex]
			idx := t.StopIndex
			data.StopIndex = &idx
			data.StopDetails = &StopDetails{
				Address: s.Address(),
				Type:    string(s.Type()),
				Name:    s.Contact().Name,
				Phone:   s.Contact().Phone,
			}
		}
	}

	if d := after.Driver(); d != nil {
		data.Driver = &DriverDetails{
			ID:    d.ID,
			Name:  d.Name,
			Phone: d.Phone,
			Plate: d.Plate,
		}
	}

	return Event{
		ID:      kernel.NewEventID().String(),
		Object:  "event",
		Type:    t.Type,
		Created: now.Unix(),
		Data:    data,
	}
}
