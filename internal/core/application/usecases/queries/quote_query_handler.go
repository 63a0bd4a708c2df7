package queries

import (
	"context"
	"math"
	"time"
)

// Base rates per vehicle class in KES. Unknown vehicles fall back to the
// cheapest rate rather than failing the quote.
var vehicleRates = map[string]int{
	"Boda Boda":    50,
	"Tuk-Tuk":      100,
	"Pickup Truck": 500,
	"Cargo Van":    800,
	"3T Lorry":     1500,
}

const (
	defaultVehicleRate = 50
	fragileHandlingFee = 100
	serviceFee         = 50

	// Flat multiplier standing in for a distance calculation until the
	// routing integration lands.
	baseDistanceFactor = 5

	quoteValidity = 5 * time.Minute
)

// QuoteResponse is the estimate returned to the caller.
type QuoteResponse struct {
	Object                string    `json:"object"`
	Amount                int       `json:"amount"`
	Currency              string    `json:"currency"`
	EstimatedDeliveryTime string    `json:"estimated_delivery_time"`
	Vehicle               string    `json:"vehicle"`
	ServiceType           string    `json:"serviceType"`
	ExpiresAt             time.Time `json:"expires_at"`
}

// QuoteQueryHandler prices a prospective order. The calculation is pure;
// no storage is touched and nothing is reserved.
type QuoteQueryHandler struct {
	currency string
}

// NewQuoteQueryHandler creates a handler that quotes in the given currency.
func NewQuoteQueryHandler(currency string) QuoteQueryHandler {
	return QuoteQueryHandler{currency: currency}
}

// Handle computes the estimate. With a caller-supplied base estimate the
// price scales by the rate ratio between the recommended and the selected
// vehicle; otherwise it prices from the vehicle's base rate. Fragile
// handling and the service fee are added on top either way.
func (h QuoteQueryHandler) Handle(_ context.Context, query QuoteQuery) (QuoteResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteResponse{}, err
	}

	var amount int
	if query.EstimatedBasePrice() > 0 && query.RecommendedVehicle() != "" {
		baseRate := rateFor(query.RecommendedVehicle())
		selectedRate := rateFor(query.Vehicle())
		ratio := float64(selectedRate) / float64(baseRate)
		amount = int(math.Round(float64(query.EstimatedBasePrice()) * ratio))
	} else {
		amount = rateFor(query.Vehicle()) * baseDistanceFactor
	}

	if query.Fragile() {
		amount += fragileHandlingFee
	}
	amount += serviceFee

	return QuoteResponse{
		Object:                "quote",
		Amount:                amount,
		Currency:              h.currency,
		EstimatedDeliveryTime: "45 mins",
		Vehicle:               query.Vehicle(),
		ServiceType:           query.ServiceType(),
		ExpiresAt:             time.Now().UTC().Add(quoteValidity),
	}, nil
}

func rateFor(vehicle string) int {
	if rate, ok := vehicleRates[vehicle]; ok {
		return rate
	}
	return defaultVehicleRate
}
