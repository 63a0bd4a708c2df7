package http

import (
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

type driverResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Plate string `json:"plate"`
}

type orderCreatedResponse struct {
	ID          string `json:"id"`
	Object      string `json:"object"`
	Status      string `json:"status"`
	Created     int64  `json:"created"`
	TrackingURL string `json:"tracking_url"`
	Environment string `json:"environment"`
}

type orderResponse struct {
	ID          string          `json:"id"`
	Object      string          `json:"object"`
	Status      string          `json:"status"`
	Driver      *driverResponse `json:"driver"`
	TrackingURL string          `json:"tracking_url"`
}

type orderCancelledResponse struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Status    string `json:"status"`
	Cancelled bool   `json:"cancelled"`
}

type orderUpdatedResponse struct {
	ID       string   `json:"id"`
	Object   string   `json:"object"`
	Status   string   `json:"status"`
	Updated  bool     `json:"updated"`
	Changes  []string `json:"changes"`
	NewPrice int      `json:"new_price"`
}

func driverFromDomain(d *order.Driver) *driverResponse {
	if d == nil {
		return nil
	}
	return &driverResponse{ID: d.ID, Name: d.Name, Phone: d.Phone, Plate: d.Plate}
}
