package order

import (
	"fmt"

	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// The lifecycle moves forward only:
//
//	pending → driver_assigned → arrived_pickup → in_transit → arrived_dropoff → delivered
//
// with two side exits: cancelled is reachable from any pre-delivered state,
// and delivery_failed is reachable from in_transit/arrived_dropoff.
// driver_assigned → driver_assigned is a valid self-transition (reassignment
// to a different driver). delivered and cancelled are terminal.
// delivery_failed is terminal for dispatch purposes, but the external retry
// flow may move it back to pending.
type Status string

const (
	// Pending is the initial state: the order is waiting for a driver.
	Pending Status = "pending"

	// DriverAssigned means a driver accepted the order.
	DriverAssigned Status = "driver_assigned"

	// ArrivedPickup means the driver arrived at the pickup location.
	ArrivedPickup Status = "arrived_pickup"

	// InTransit means the package was picked up and is on its way.
	InTransit Status = "in_transit"

	// ArrivedDropoff means the driver arrived at the destination.
	ArrivedDropoff Status = "arrived_dropoff"

	// Delivered is the final successful state.
	Delivered Status = "delivered"

	// Cancelled is the final cancelled state. Orders are never deleted;
	// cancellation is a status, not removal.
	Cancelled Status = "cancelled"

	// DeliveryFailed means a delivery attempt failed. No further dispatch
	// happens for this order unless the external retry flow re-enters pending.
	DeliveryFailed Status = "delivery_failed"
)

// forwardRank orders the main lifecycle chain. Side states (cancelled,
// delivery_failed) are not part of the chain.
var forwardRank = map[Status]int{
	Pending:        0,
	DriverAssigned: 1,
	ArrivedPickup:  2,
	InTransit:      3,
	ArrivedDropoff: 4,
	Delivered:      5,
}

// Validate checks that the Status is one of the known lifecycle states.
func (s Status) Validate() error {
	switch s {
	case Pending, DriverAssigned, ArrivedPickup, InTransit, ArrivedDropoff,
		Delivered, Cancelled, DeliveryFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid order status", string(s)))
	}
}

// String returns the wire form of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the order can never change state again.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether moving from s to next respects the
// forward-only lifecycle. Skipping intermediate chain states is allowed
// (a driver may go straight from driver_assigned to in_transit).
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}

	switch next {
	case Cancelled:
		return true
	case DeliveryFailed:
		return s == InTransit || s == ArrivedDropoff
	case DriverAssigned:
		// pending → driver_assigned, or reassignment in place.
		return s == Pending || s == DriverAssigned
	case Pending:
		// external retry flow after a failed delivery
		return s == DeliveryFailed
	}

	from, inChain := forwardRank[s]
	to, nextInChain := forwardRank[next]
	return inChain && nextInChain && to > from
}

// AllowsPickupChange reports whether the pickup address (and the schedule/
// vehicle fields that share its guard) may still be edited. Anything from
// driver assignment onward locks them.
func (s Status) AllowsPickupChange() bool {
	return s == Pending
}

// AllowsRouteChange reports whether dropoff, stops, items and recipient may
// still be edited. Only the terminal states lock them.
func (s Status) AllowsRouteChange() bool {
	return !s.IsTerminal()
}

// AllowsCancellation reports whether the integrator API may cancel the
// order. The window closes while the package is in the driver's hands and
// at delivery; it reopens at arrived_dropoff, where handover can still be
// refused.
func (s Status) AllowsCancellation() bool {
	switch s {
	case InTransit, Delivered:
		return false
	default:
		return true
	}
}
