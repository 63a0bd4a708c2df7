// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Timestamps are owned by the domain, not by GORM: updated_at doubles as the
// optimistic concurrency token, so automatic touching would break the
// conditional write.
type OrderDTO struct {
	ID     string `gorm:"type:text;primaryKey"`
	UserID string `gorm:"type:text;index"`
	Status string `gorm:"type:text;index"`

	Pickup     string `gorm:"type:text"`
	Dropoff    string `gorm:"type:text"`
	PickupLat  *float64
	PickupLng  *float64
	DropoffLat *float64
	DropoffLng *float64

	// Route stops serialized as a JSON array; empty for two-point orders.
	Stops string `gorm:"type:jsonb;default:'[]'"`

	ItemsDescription   string `gorm:"type:text"`
	ItemsWeightKg      float64
	ItemsFragile       bool
	ItemsValue         int
	ItemsHandlingNotes string `gorm:"type:text"`

	RecipientName     string `gorm:"type:text"`
	RecipientPhone    string `gorm:"type:text"`
	RecipientIDNumber string `gorm:"type:text"`

	DriverID    *string `gorm:"type:text;index"`
	DriverName  string  `gorm:"type:text"`
	DriverPhone string  `gorm:"type:text"`
	DriverPlate string  `gorm:"type:text"`

	Vehicle     string `gorm:"type:text"`
	ServiceType string `gorm:"type:text"`
	PickupTime  string `gorm:"type:text"`
	Scheduled   bool
	Environment string `gorm:"type:text"`

	Price         int
	PriceUpdated  bool
	PaymentStatus string `gorm:"type:text"`

	Metadata string `gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// stopDTO is the JSON shape of one route stop inside the stops column.
type stopDTO struct {
	ID           string `json:"id"`
	Address      string `json:"address"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	ContactName  string `json:"contactName,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	stops := make([]stopDTO, 0, len(aggregate.Stops()))
	for _, s := range aggregate.Stops() {
		stops = append(stops, stopDTO{
			ID:           s.ID().String(),
			Address:      s.Address(),
			Type:         string(s.Type()),
			Status:       string(s.Status()),
			ContactName:  s.Contact().Name,
			ContactPhone: s.Contact().Phone,
			Instructions: s.Instructions(),
		})
	}
	rawStops, err := json.Marshal(stops)
	if err != nil {
		return OrderDTO{}, err
	}

	metadata := aggregate.Metadata()
	if metadata == nil {
		metadata = map[string]string{}
	}
	rawMetadata, err := json.Marshal(metadata)
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		ID:                 aggregate.ID().String(),
		UserID:             aggregate.UserID(),
		Status:             string(aggregate.Status()),
		Pickup:             aggregate.Pickup(),
		Dropoff:            aggregate.Dropoff(),
		Stops:              string(rawStops),
		ItemsDescription:   aggregate.Items().Description,
		ItemsWeightKg:      aggregate.Items().WeightKg,
		ItemsFragile:       aggregate.Items().Fragile,
		ItemsValue:         aggregate.Items().Value,
		ItemsHandlingNotes: aggregate.Items().HandlingNotes,
		RecipientName:      aggregate.Recipient().Name,
		RecipientPhone:     aggregate.Recipient().Phone,
		RecipientIDNumber:  aggregate.Recipient().IDNumber,
		Vehicle:            aggregate.Vehicle(),
		ServiceType:        aggregate.ServiceType(),
		PickupTime:         aggregate.PickupTime(),
		Scheduled:          aggregate.Scheduled(),
		Environment:        aggregate.Environment(),
		Price:              aggregate.Price(),
		PriceUpdated:       aggregate.PriceUpdated(),
		PaymentStatus:      string(aggregate.PaymentStatus()),
		Metadata:           string(rawMetadata),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}

	if c := aggregate.PickupCoords(); c != nil {
		lat, lng := c.Lat, c.Lng
		dto.PickupLat, dto.PickupLng = &lat, &lng
	}
	if c := aggregate.DropoffCoords(); c != nil {
		lat, lng := c.Lat, c.Lng
		dto.DropoffLat, dto.DropoffLng = &lat, &lng
	}
	if d := aggregate.Driver(); d != nil {
		id := d.ID
		dto.DriverID = &id
		dto.DriverName = d.Name
		dto.DriverPhone = d.Phone
		dto.DriverPlate = d.Plate
	}

	return dto, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.IDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	var rawStops []stopDTO
	if dto.Stops != "" {
		if err = json.Unmarshal([]byte(dto.Stops), &rawStops); err != nil {
			return nil, err
		}
	}
	stops := make([]order.Stop, 0, len(rawStops))
	for _, s := range rawStops {
		stopID, stopErr := kernel.IDFromString(s.ID)
		if stopErr != nil {
			return nil, stopErr
		}
		stop, stopErr := order.RestoreStop(
			stopID,
			s.Address,
			order.StopType(s.Type),
			order.StopStatus(s.Status),
			order.StopContact{Name: s.ContactName, Phone: s.ContactPhone},
			s.Instructions,
		)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, stop)
	}

	var metadata map[string]string
	if dto.Metadata != "" {
		if err = json.Unmarshal([]byte(dto.Metadata), &metadata); err != nil {
			return nil, err
		}
	}

	var driver *order.Driver
	if dto.DriverID != nil {
		driver = &order.Driver{
			ID:    *dto.DriverID,
			Name:  dto.DriverName,
			Phone: dto.DriverPhone,
			Plate: dto.DriverPlate,
		}
	}

	var pickupCoords, dropoffCoords *order.Coords
	if dto.PickupLat != nil && dto.PickupLng != nil {
		pickupCoords = &order.Coords{Lat: *dto.PickupLat, Lng: *dto.PickupLng}
	}
	if dto.DropoffLat != nil && dto.DropoffLng != nil {
		dropoffCoords = &order.Coords{Lat: *dto.DropoffLat, Lng: *dto.DropoffLng}
	}

	return order.RestoreOrder(id, dto.UserID, order.Restored{
		Details: order.Details{
			Pickup:        dto.Pickup,
			Dropoff:       dto.Dropoff,
			PickupCoords:  pickupCoords,
			DropoffCoords: dropoffCoords,
			Vehicle:       dto.Vehicle,
			ServiceType:   dto.ServiceType,
			Items: order.Items{
				Description:   dto.ItemsDescription,
				WeightKg:      dto.ItemsWeightKg,
				Fragile:       dto.ItemsFragile,
				Value:         dto.ItemsValue,
				HandlingNotes: dto.ItemsHandlingNotes,
			},
			Recipient: order.Contact{
				Name:     dto.RecipientName,
				Phone:    dto.RecipientPhone,
				IDNumber: dto.RecipientIDNumber,
			},
			Stops:       stops,
			PickupTime:  dto.PickupTime,
			Scheduled:   dto.Scheduled,
			Environment: dto.Environment,
			Price:       dto.Price,
			Metadata:    metadata,
		},
		Status:        order.Status(dto.Status),
		Driver:        driver,
		PriceUpdated:  dto.PriceUpdated,
		PaymentStatus: order.PaymentStatus(dto.PaymentStatus),
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}
