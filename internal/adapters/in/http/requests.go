package http

import (
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

type itemsRequest struct {
	Description   *string  `json:"description"`
	WeightKg      *float64 `json:"weightKg"`
	Fragile       *bool    `json:"fragile"`
	Value         *int     `json:"value"`
	HandlingNotes *string  `json:"handlingNotes"`
}

type recipientRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IDNumber *string `json:"idNumber"`
}

type stopRequest struct {
	Address string `json:"address"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

type createOrderRequest struct {
	Pickup      string            `json:"pickup"`
	Dropoff     string            `json:"dropoff"`
	Vehicle     string            `json:"vehicle"`
	ServiceType string            `json:"serviceType"`
	Items       itemsRequest      `json:"items"`
	Recipient   recipientRequest  `json:"recipient"`
	Stops       []stopRequest     `json:"stops"`
	PickupTime  string            `json:"pickupTime"`
	Scheduled   bool              `json:"scheduled"`
	Metadata    map[string]string `json:"metadata"`
}

type patchOrderRequest struct {
	Pickup      *string           `json:"pickup"`
	Dropoff     *string           `json:"dropoff"`
	Recipient   *recipientRequest `json:"recipient"`
	Stops       []stopRequest     `json:"stops"`
	Items       *itemsRequest     `json:"items"`
	Vehicle     *string           `json:"vehicle"`
	ServiceType *string           `json:"serviceType"`
	PickupTime  *string           `json:"pickupTime"`
}

type quoteRequest struct {
	Pickup             string `json:"pickup"`
	Dropoff            string `json:"dropoff"`
	Vehicle            string `json:"vehicle"`
	ServiceType        string `json:"serviceType"`
	Fragile            bool   `json:"fragile"`
	EstimatedBasePrice int    `json:"estimatedBasePrice"`
	RecommendedVehicle string `json:"recommendedVehicle"`
}

func (r createOrderRequest) items() order.Items {
	items := order.Items{}
	if r.Items.Description != nil {
		items.Description = *r.Items.Description
	}
	if r.Items.WeightKg != nil {
		items.WeightKg = *r.Items.WeightKg
	}
	if r.Items.Fragile != nil {
		items.Fragile = *r.Items.Fragile
	}
	if r.Items.Value != nil {
		items.Value = *r.Items.Value
	}
	if r.Items.HandlingNotes != nil {
		items.HandlingNotes = *r.Items.HandlingNotes
	}
	return items
}

func (r createOrderRequest) recipient() order.Contact {
	contact := order.Contact{}
	if r.Recipient.Name != nil {
		contact.Name = *r.Recipient.Name
	}
	if r.Recipient.Phone != nil {
		contact.Phone = *r.Recipient.Phone
	}
	if r.Recipient.IDNumber != nil {
		contact.IDNumber = *r.Recipient.IDNumber
	}
	return contact
}

func (r createOrderRequest) stops() ([]order.Stop, error) {
	stops := make([]order.Stop, 0, len(r.Stops))
	for _, s := range r.Stops {
		stop, err := order.NewStop(
			s.Address,
			order.StopType(s.Type),
			order.StopContact{Name: s.Name, Phone: s.Phone},
			s.Notes,
		)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

func (r patchOrderRequest) toPatch() (order.Patch, error) {
	patch := order.Patch{
		Pickup:      r.Pickup,
		Dropoff:     r.Dropoff,
		Vehicle:     r.Vehicle,
		ServiceType: r.ServiceType,
		PickupTime:  r.PickupTime,
	}

	if r.Recipient != nil {
		patch.Recipient = &order.ContactPatch{
			Name:     r.Recipient.Name,
			Phone:    r.Recipient.Phone,
			IDNumber: r.Recipient.IDNumber,
		}
	}
	if r.Items != nil {
		patch.Items = &order.ItemsPatch{
			Description:   r.Items.Description,
			WeightKg:      r.Items.WeightKg,
			Fragile:       r.Items.Fragile,
			Value:         r.Items.Value,
			HandlingNotes: r.Items.HandlingNotes,
		}
	}
	if r.Stops != nil {
		stops := make([]order.Stop, 0, len(r.Stops))
		for _, s := range r.Stops {
			stop, err := order.NewStop(
				s.Address,
				order.StopType(s.Type),
				order.StopContact{Name: s.Name, Phone: s.Phone},
				s.Notes,
			)
			if err != nil {
				return order.Patch{}, err
			}
			stops = append(stops, stop)
		}
		patch.Stops = stops
	}

	return patch, nil
}
