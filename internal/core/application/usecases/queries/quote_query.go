package queries

import (
	"errors"

	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/guard"
)

var ErrQuoteQueryIsNotConstructed = errors.New(
	"QuoteQuery must be created via NewQuoteQuery constructor",
)

// QuoteQuery requests a stateless price estimate for a prospective order.
// Nothing is persisted; the quote expires after a few minutes.
type QuoteQuery struct {
	pickup      string
	dropoff     string
	vehicle     string
	serviceType string
	fragile     bool

	// When the caller already holds an estimate for a recommended vehicle,
	// the quote scales that estimate by the rate ratio between the two
	// vehicles instead of pricing from scratch.
	estimatedBasePrice int
	recommendedVehicle string

	guard guard.ConstructorGuard
}

// QuoteOptions carries the optional inputs of a quote request.
type QuoteOptions struct {
	Fragile            bool
	EstimatedBasePrice int
	RecommendedVehicle string
}

// NewQuoteQuery creates a quote request. Pickup, dropoff, vehicle and
// service type are all required.
func NewQuoteQuery(pickup, dropoff, vehicle, serviceType string, opts QuoteOptions) (QuoteQuery, error) {
	if pickup == "" {
		return QuoteQuery{}, errs.NewValueIsRequiredError("pickup")
	}
	if dropoff == "" {
		return QuoteQuery{}, errs.NewValueIsRequiredError("dropoff")
	}
	if vehicle == "" {
		return QuoteQuery{}, errs.NewValueIsRequiredError("vehicle")
	}
	if serviceType == "" {
		return QuoteQuery{}, errs.NewValueIsRequiredError("serviceType")
	}

	return QuoteQuery{
		pickup:             pickup,
		dropoff:            dropoff,
		vehicle:            vehicle,
		serviceType:        serviceType,
		fragile:            opts.Fragile,
		estimatedBasePrice: opts.EstimatedBasePrice,
		recommendedVehicle: opts.RecommendedVehicle,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q QuoteQuery) Validate() error {
	return q.guard.Validate(ErrQuoteQueryIsNotConstructed)
}

// Pickup returns the pickup address.
func (q QuoteQuery) Pickup() string { return q.pickup }

// Dropoff returns the dropoff address.
func (q QuoteQuery) Dropoff() string { return q.dropoff }

// Vehicle returns the requested vehicle class.
func (q QuoteQuery) Vehicle() string { return q.vehicle }

// ServiceType returns the requested service level.
func (q QuoteQuery) ServiceType() string { return q.serviceType }

// Fragile reports whether the shipment needs fragile handling.
func (q QuoteQuery) Fragile() bool { return q.fragile }

// EstimatedBasePrice returns the caller-supplied estimate, zero when absent.
func (q QuoteQuery) EstimatedBasePrice() int { return q.estimatedBasePrice }

// RecommendedVehicle returns the vehicle the estimate was made for.
func (q QuoteQuery) RecommendedVehicle() string { return q.recommendedVehicle }
