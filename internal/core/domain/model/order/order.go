package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidStatusTransition is returned when a status change would move
	// the lifecycle backward or out of a terminal state.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrOrderInProgress is returned when cancellation is requested after the
	// package has been picked up.
	ErrOrderInProgress = errors.New("cannot cancel an order that is already in progress")
)

// Order is the delivery request aggregate. It owns its stop sequence and
// enforces the forward-only status lifecycle; once delivered or cancelled
// the order is immutable.
//
// updatedAt doubles as the optimistic-concurrency token: every mutation
// refreshes it, and the persistence layer writes conditionally against the
// snapshot's previous value.
type Order struct {
	id     kernel.ID
	userID string
	status Status

	pickup        string
	dropoff       string
	pickupCoords  *Coords
	dropoffCoords *Coords
	stops         []Stop

	items     Items
	recipient Contact
	driver    *Driver

	vehicle     string
	serviceType string
	pickupTime  string
	scheduled   bool
	environment string

	price        int
	priceUpdated bool

	paymentStatus PaymentStatus
	metadata      map[string]string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// Details carries the caller-supplied attributes for a new order.
type Details struct {
	Pickup        string
	Dropoff       string
	PickupCoords  *Coords
	DropoffCoords *Coords
	Vehicle       string
	ServiceType   string
	Items         Items
	Recipient     Contact
	Stops         []Stop
	PickupTime    string
	Scheduled     bool
	Environment   string
	Price         int
	Metadata      map[string]string
}

// NewOrder creates an order in pending status. Pickup, dropoff, vehicle,
// service type, the item description and the recipient phone are required.
// An empty pickup time defaults to "ASAP"; an item weight of zero defaults
// to 1 kg.
func NewOrder(id kernel.ID, userID string, d Details, now time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, errs.NewValueIsRequiredError("userId")
	}
	if err := validateDetails(d); err != nil {
		return nil, err
	}

	if d.PickupTime == "" {
		d.PickupTime = "ASAP"
	}
	if d.Items.WeightKg == 0 {
		d.Items.WeightKg = 1
	}

	now = now.UTC().Truncate(time.Microsecond)
	return &Order{
		id:            id,
		userID:        userID,
		status:        Pending,
		pickup:        d.Pickup,
		dropoff:       d.Dropoff,
		pickupCoords:  d.PickupCoords,
		dropoffCoords: d.DropoffCoords,
		stops:         append([]Stop(nil), d.Stops...),
		items:         d.Items,
		recipient:     d.Recipient,
		vehicle:       d.Vehicle,
		serviceType:   d.ServiceType,
		pickupTime:    d.PickupTime,
		scheduled:     d.Scheduled,
		environment:   d.Environment,
		price:         d.Price,
		metadata:      d.Metadata,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

func validateDetails(d Details) error {
	if d.Pickup == "" {
		return errs.NewValueIsRequiredError("pickup")
	}
	if d.Dropoff == "" {
		return errs.NewValueIsRequiredError("dropoff")
	}
	if d.Vehicle == "" {
		return errs.NewValueIsRequiredError("vehicle")
	}
	if d.ServiceType == "" {
		return errs.NewValueIsRequiredError("serviceType")
	}
	if d.Items.Description == "" {
		return errs.NewValueIsRequiredError("items.description")
	}
	if d.Recipient.Phone == "" {
		return errs.NewValueIsRequiredError("recipient.phone")
	}
	if d.Price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%d is negative", d.Price))
	}
	return nil
}

// Restored carries the full persisted state of an order.
type Restored struct {
	Details
	Status        Status
	Driver        *Driver
	PriceUpdated  bool
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(id kernel.ID, userID string, r Restored) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, errs.NewValueIsRequiredError("userId")
	}
	if err := r.Status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		userID:        userID,
		status:        r.Status,
		pickup:        r.Pickup,
		dropoff:       r.Dropoff,
		pickupCoords:  r.PickupCoords,
		dropoffCoords: r.DropoffCoords,
		stops:         append([]Stop(nil), r.Stops...),
		items:         r.Items,
		recipient:     r.Recipient,
		driver:        r.Driver,
		vehicle:       r.Vehicle,
		serviceType:   r.ServiceType,
		pickupTime:    r.PickupTime,
		scheduled:     r.Scheduled,
		environment:   r.Environment,
		price:         r.Price,
		priceUpdated:  r.PriceUpdated,
		paymentStatus: r.PaymentStatus,
		metadata:      r.Metadata,
		createdAt:     r.CreatedAt,
		updatedAt:     r.UpdatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Clone returns a deep copy of the order. Used to capture the before
// snapshot ahead of a mutation so the transition detector can diff it
// against the result.
func (o *Order) Clone() *Order {
	c := *o
	c.stops = append([]Stop(nil), o.stops...)
	if o.driver != nil {
		d := *o.driver
		c.driver = &d
	}
	if o.pickupCoords != nil {
		p := *o.pickupCoords
		c.pickupCoords = &p
	}
	if o.dropoffCoords != nil {
		p := *o.dropoffCoords
		c.dropoffCoords = &p
	}
	if o.metadata != nil {
		m := make(map[string]string, len(o.metadata))
		for k, v := range o.metadata {
			m[k] = v
		}
		c.metadata = m
	}
	return &c
}

// ID returns the order's identifier.
func (o *Order) ID() kernel.ID { return o.id }

// UserID returns the owning account's identifier.
func (o *Order) UserID() string { return o.userID }

// Status returns the current lifecycle state.
func (o *Order) Status() Status { return o.status }

// Pickup returns the pickup address.
func (o *Order) Pickup() string { return o.pickup }

// Dropoff returns the dropoff address.
func (o *Order) Dropoff() string { return o.dropoff }

// PickupCoords returns the pickup coordinates, nil when not geocoded.
func (o *Order) PickupCoords() *Coords { return o.pickupCoords }

// DropoffCoords returns the dropoff coordinates, nil when not geocoded.
func (o *Order) DropoffCoords() *Coords { return o.dropoffCoords }

// Stops returns a copy of the ordered stop sequence.
func (o *Order) Stops() []Stop { return append([]Stop(nil), o.stops...) }

// Items returns the package details.
func (o *Order) Items() Items { return o.items }

// Recipient returns the recipient contact details.
func (o *Order) Recipient() Contact { return o.recipient }

// Driver returns the assigned driver, nil while unassigned.
func (o *Order) Driver() *Driver { return o.driver }

// Vehicle returns the requested vehicle type.
func (o *Order) Vehicle() string { return o.vehicle }

// ServiceType returns the requested service level.
func (o *Order) ServiceType() string { return o.serviceType }

// PickupTime returns the requested pickup time ("ASAP" or an ISO timestamp).
func (o *Order) PickupTime() string { return o.pickupTime }

// Scheduled reports whether this is a scheduled (future) pickup.
func (o *Order) Scheduled() bool { return o.scheduled }

// Environment returns the key mode the order was created in (LIVE or TEST).
func (o *Order) Environment() string { return o.environment }

// Price returns the current price in integer currency units.
func (o *Order) Price() int { return o.price }

// PriceUpdated reports whether the price was recalculated after creation.
func (o *Order) PriceUpdated() bool { return o.priceUpdated }

// PaymentStatus returns the reported payment outcome.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// Metadata returns the integrator-supplied metadata passthrough.
func (o *Order) Metadata() map[string]string { return o.metadata }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last-modified timestamp, which is also the
// optimistic-concurrency token.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// AssignDriver assigns or reassigns a driver. Valid from pending (initial
// assignment) and from driver_assigned (reassignment).
func (o *Order) AssignDriver(d Driver, now time.Time) error {
	if d.ID == "" {
		return errs.NewValueIsRequiredError("driver.id")
	}
	if !o.status.CanTransitionTo(DriverAssigned) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidStatusTransition, o.status, DriverAssigned)
	}

	o.status = DriverAssigned
	o.driver = &d
	o.touch(now)
	return nil
}

// ChangeStatus moves the order to the next lifecycle state. Used by the
// driver-facing flow for arrivals, pickup, delivery and failure.
func (o *Order) ChangeStatus(next Status, now time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidStatusTransition, o.status, next)
	}

	o.status = next
	o.touch(now)
	return nil
}

// Cancel cancels the order. Cancelling an already-cancelled order is a
// no-op; orders that are in transit or delivered cannot be cancelled.
func (o *Order) Cancel(now time.Time) error {
	if o.status == Cancelled {
		return nil
	}
	if !o.status.AllowsCancellation() {
		return ErrOrderInProgress
	}

	o.status = Cancelled
	o.touch(now)
	return nil
}

// MarkPaymentStatus records the payment outcome reported by the payment
// collaborator.
func (o *Order) MarkPaymentStatus(ps PaymentStatus, now time.Time) error {
	if ps != PaymentPaid && ps != PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%q is not a reportable payment outcome", string(ps)))
	}

	o.paymentStatus = ps
	o.touch(now)
	return nil
}

// UpdateStopStatus advances the named stop through pending → arrived →
// completed. Moving a stop backward is rejected.
func (o *Order) UpdateStopStatus(stopID kernel.ID, status StopStatus, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: order is %s", ErrInvalidStatusTransition, o.status)
	}

	for i := range o.stops {
		if !o.stops[i].id.IsEqual(stopID) {
			continue
		}
		if status.rank() <= o.stops[i].status.rank() {
			return fmt.Errorf("%w: stop %s → %s", ErrInvalidStatusTransition,
				o.stops[i].status, status)
		}
		o.stops[i].status = status
		o.touch(now)
		return nil
	}

	return errs.NewObjectNotFoundError("stopId", stopID.String())
}

func (o *Order) touch(now time.Time) {
	// Postgres keeps microsecond precision; truncating here keeps the
	// in-memory timestamp identical to what a reload would return, which
	// matters because updated_at is the optimistic concurrency token.
	o.updatedAt = now.UTC().Truncate(time.Microsecond)
}
