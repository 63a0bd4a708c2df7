package services

import (
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
)

// EventType is a canonical event name from the webhook taxonomy.
type EventType string

const (
	EventOrderCancelled            EventType = "order.cancelled"
	EventFulfillmentAllocated      EventType = "fulfillment.allocated"
	EventFulfillmentReallocated    EventType = "fulfillment.reallocated"
	EventFulfillmentArrivedPickup  EventType = "fulfillment.arrived_pickup"
	EventFulfillmentPickedUp       EventType = "fulfillment.picked_up"
	EventFulfillmentArrivedDropoff EventType = "fulfillment.arrived_dropoff"
	EventFulfillmentArrivedStop    EventType = "fulfillment.arrived_stop"
	EventFulfillmentCompletedStop  EventType = "fulfillment.completed_stop"
	EventFulfillmentCompleted      EventType = "fulfillment.completed"
	EventFulfillmentFailed         EventType = "fulfillment.failed"
	EventOrderUpdated              EventType = "order.updated"
	EventPaymentSucceeded          EventType = "payment.succeeded"
	EventPaymentFailed             EventType = "payment.failed"
)

// Transition is the single canonical event derived from a before/after
// order diff. StopIndex is meaningful only when HasStop is true (the
// per-stop event types).
type Transition struct {
	Type      EventType
	StopIndex int
	HasStop   bool
}

// transitionRule pairs a predicate over a snapshot diff with the event it
// produces. Rules are evaluated in declaration order and each true rule
// overwrites the previous result, so effective precedence is the reverse of
// evaluation order: the last matching rule wins.
type transitionRule struct {
	result Transition
	match  func(before, after *order.Order) bool
}

// DetectTransition computes at most one event type from a before/after pair
// of snapshots of the same order. It is a pure function of the two
// snapshots and never consults external state.
//
// Evaluation order (low → high precedence): cancellation, allocation,
// reallocation, arrival at pickup, pickup, arrival at dropoff, per-stop
// arrival/completion in ascending index order, delivery completion,
// delivery failure, generic order update, payment success, payment failure.
// When several predicates are simultaneously true the one evaluated last
// wins; notably the broad order.updated rule outranks the fulfillment
// rules when a price or stop-sequence change rides along with a status
// change.
func DetectTransition(before, after *order.Order) (Transition, bool) {
	rules := buildRules(before, after)

	var result Transition
	found := false
	for _, r := range rules {
		if r.match(before, after) {
			result = r.result
			found = true
		}
	}
	return result, found
}

func buildRules(before, after *order.Order) []transitionRule {
	rules := []transitionRule{
		{
			result: Transition{Type: EventOrderCancelled},
			match: func(b, a *order.Order) bool {
				return a.Status() == order.Cancelled && b.Status() != order.Cancelled
			},
		},
		{
			result: Transition{Type: EventFulfillmentAllocated},
			match: func(b, a *order.Order) bool {
				return b.Status() == order.Pending && a.Status() == order.DriverAssigned
			},
		},
		{
			result: Transition{Type: EventFulfillmentReallocated},
			match: func(b, a *order.Order) bool {
				return b.Status() == order.DriverAssigned && a.Status() == order.DriverAssigned &&
					b.Driver() != nil && a.Driver() != nil && b.Driver().ID != a.Driver().ID
			},
		},
		{
			result: Transition{Type: EventFulfillmentArrivedPickup},
			match: func(b, a *order.Order) bool {
				return a.Status() == order.ArrivedPickup && b.Status() != order.ArrivedPickup
			},
		},
		{
			result: Transition{Type: EventFulfillmentPickedUp},
			match: func(b, a *order.Order) bool {
				return a.Status() == order.InTransit && b.Status() != order.InTransit
			},
		},
		{
			result: Transition{Type: EventFulfillmentArrivedDropoff},
			match: func(b, a *order.Order) bool {
				return a.Status() == order.ArrivedDropoff && b.Status() != order.ArrivedDropoff
			},
		},
	}

	rules = append(rules, stopRules(before, after)...)

	rules = append(rules,
		transitionRule{
			result: Transition{Type: EventFulfillmentCompleted},
			match: func(b, a *order.Order) bool {
				return a.Status() == order.Delivered && b.Status() != order.Delivered
			},
		},
		transitionRule{
			result: Transition{Type: EventFulfillmentFailed},
			match: func(b, a *order.Order) bool {
				return a.Status() == order.DeliveryFailed && b.Status() != order.DeliveryFailed
			},
		},
		transitionRule{
			// Intentionally broad: any price or stop-sequence change rides
			// on updatedAt and outranks the fulfillment rules above.
			result: Transition{Type: EventOrderUpdated},
			match: func(b, a *order.Order) bool {
				if a.UpdatedAt().Equal(b.UpdatedAt()) {
					return false
				}
				return a.Price() != b.Price() || !stopSequencesEqual(b.Stops(), a.Stops())
			},
		},
		transitionRule{
			result: Transition{Type: EventPaymentSucceeded},
			match: func(b, a *order.Order) bool {
				return a.PaymentStatus() == order.PaymentPaid && b.PaymentStatus() != order.PaymentPaid
			},
		},
		transitionRule{
			result: Transition{Type: EventPaymentFailed},
			match: func(b, a *order.Order) bool {
				return a.PaymentStatus() == order.PaymentFailed && b.PaymentStatus() != order.PaymentFailed
			},
		},
	)

	return rules
}

// stopRules builds one arrival and one completion rule for every stop index
// present in both snapshots, in ascending index order (arrival before
// completion per index). When several stops change in one update the
// highest index wins by overwrite.
func stopRules(before, after *order.Order) []transitionRule {
	bStops, aStops := before.Stops(), after.Stops()
	n := min(len(bStops), len(aStops))

	rules := make([]transitionRule, 0, n*2)
	for i := range n {
		idx := i
		rules = append(rules,
			transitionRule{
				result: Transition{Type: EventFulfillmentArrivedStop, StopIndex: idx, HasStop: true},
				match: func(b, a *order.Order) bool {
					return stopStatusAt(b, idx) != order.StopArrived &&
						stopStatusAt(a, idx) == order.StopArrived
				},
			},
			transitionRule{
				result: Transition{Type: EventFulfillmentCompletedStop, StopIndex: idx, HasStop: true},
				match: func(b, a *order.Order) bool {
					return stopStatusAt(b, idx) != order.StopCompleted &&
						stopStatusAt(a, idx) == order.StopCompleted
				},
			},
		)
	}
	return rules
}

func stopStatusAt(o *order.Order, idx int) order.StopStatus {
	stops := o.Stops()
	if idx >= len(stops) {
		return ""
	}
	return stops[idx].Status()
}

// stopSequencesEqual compares the route itself: stop identities, addresses
// and kinds in order. Per-stop status progress is deliberately excluded so
// that driver progress through stops does not read as a route change.
func stopSequencesEqual(a, b []order.Stop) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].ID().IsEqual(b[i].ID()) ||
			a[i].Address() != b[i].Address() ||
			a[i].Type() != b[i].Type() {
			return false
		}
	}
	return true
}
