package order

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrModificationForbidden is returned when a patched field is locked by
	// the order's current status. These rejections are enforced business
	// rules, not recoverable faults.
	ErrModificationForbidden = errors.New("modification forbidden")

	// ErrNoChanges is returned when a patch carries no field that passes any
	// guard.
	ErrNoChanges = errors.New("no valid fields provided")
)

// priceMarkup is the recalculation heuristic applied when the route or the
// items change after creation.
const priceMarkup = 1.15

// Patch is a caller-supplied partial update. Nil pointers mean "not
// provided"; a nil Stops slice means the stop sequence is untouched.
type Patch struct {
	Pickup      *string
	Dropoff     *string
	Recipient   *ContactPatch
	Stops       []Stop
	Items       *ItemsPatch
	Vehicle     *string
	ServiceType *string
	PickupTime  *string
}

// ContactPatch is a field-by-field update of the recipient.
type ContactPatch struct {
	Name     *string
	Phone    *string
	IDNumber *string
}

// ItemsPatch is a field-by-field update of the package details.
type ItemsPatch struct {
	Description   *string
	WeightKg      *float64
	Fragile       *bool
	Value         *int
	HandlingNotes *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Pickup == nil && p.Dropoff == nil && p.Recipient == nil &&
		p.Stops == nil && p.Items == nil && p.Vehicle == nil &&
		p.ServiceType == nil && p.PickupTime == nil
}

// PatchResult reports what a successful patch changed.
type PatchResult struct {
	// Changes lists the top-level field names written, including price,
	// priceUpdated and updatedAt when applicable.
	Changes []string

	// NewPrice is the price after the patch (recalculated or unchanged).
	NewPrice int

	// PriceUpdated reports whether the patch triggered a recalculation.
	PriceUpdated bool
}

// ApplyPatch validates a partial update against the status-keyed guards and
// applies every passing field as one atomic mutation. Guard resolution
// order, each guard independent:
//
//  1. pickup: editable only while pending
//  2. pickupTime / vehicle / serviceType: same restriction as pickup
//  3. dropoff / stops / items: editable until delivered or cancelled;
//     any change recalculates the price (+15%, rounded) and merges items
//     field by field
//  4. recipient: editable until delivered or cancelled; merged field by field
//
// A patch in which no field passes any guard fails with ErrNoChanges.
// A field rejected by its guard fails the whole patch with
// ErrModificationForbidden; nothing is applied.
func (o *Order) ApplyPatch(p Patch, now time.Time) (PatchResult, error) {
	var changes []string
	apply := make([]func(), 0, 8)

	if p.Pickup != nil {
		if !o.status.AllowsPickupChange() {
			return PatchResult{}, fmt.Errorf("%w: cannot change pickup after driver assignment", ErrModificationForbidden)
		}
		v := *p.Pickup
		apply = append(apply, func() { o.pickup = v })
		changes = append(changes, "pickup")
	}

	if p.PickupTime != nil || p.Vehicle != nil || p.ServiceType != nil {
		if !o.status.AllowsPickupChange() {
			return PatchResult{}, fmt.Errorf("%w: cannot change vehicle or schedule after driver assignment", ErrModificationForbidden)
		}
		if p.PickupTime != nil {
			v := *p.PickupTime
			apply = append(apply, func() { o.pickupTime = v })
			changes = append(changes, "pickupTime")
		}
		if p.Vehicle != nil {
			v := *p.Vehicle
			apply = append(apply, func() { o.vehicle = v })
			changes = append(changes, "vehicle")
		}
		if p.ServiceType != nil {
			v := *p.ServiceType
			apply = append(apply, func() { o.serviceType = v })
			changes = append(changes, "serviceType")
		}
	}

	priceRecalculated := false
	newPrice := o.price
	if p.Dropoff != nil || p.Stops != nil || p.Items != nil {
		if !o.status.AllowsRouteChange() {
			return PatchResult{}, fmt.Errorf("%w: cannot modify completed or cancelled order", ErrModificationForbidden)
		}
		if p.Dropoff != nil {
			v := *p.Dropoff
			apply = append(apply, func() { o.dropoff = v })
			changes = append(changes, "dropoff")
		}
		if p.Stops != nil {
			v := append([]Stop(nil), p.Stops...)
			apply = append(apply, func() { o.stops = v })
			changes = append(changes, "stops")
		}
		if p.Items != nil {
			merged := mergeItems(o.items, *p.Items)
			apply = append(apply, func() { o.items = merged })
			changes = append(changes, "items")
		}

		priceRecalculated = true
		newPrice = int(math.Round(float64(o.price) * priceMarkup))
		apply = append(apply, func() {
			o.price = newPrice
			o.priceUpdated = true
		})
		changes = append(changes, "price", "priceUpdated")
	}

	if p.Recipient != nil {
		if !o.status.AllowsRouteChange() {
			return PatchResult{}, fmt.Errorf("%w: cannot modify recipient on completed order", ErrModificationForbidden)
		}
		merged := mergeContact(o.recipient, *p.Recipient)
		apply = append(apply, func() { o.recipient = merged })
		changes = append(changes, "recipient")
	}

	if len(changes) == 0 {
		return PatchResult{}, ErrNoChanges
	}

	for _, fn := range apply {
		fn()
	}
	o.touch(now)
	changes = append(changes, "updatedAt")

	return PatchResult{
		Changes:      changes,
		NewPrice:     newPrice,
		PriceUpdated: priceRecalculated,
	}, nil
}

func mergeItems(base Items, p ItemsPatch) Items {
	if p.Description != nil {
		base.Description = *p.Description
	}
	if p.WeightKg != nil {
		base.WeightKg = *p.WeightKg
	}
	if p.Fragile != nil {
		base.Fragile = *p.Fragile
	}
	if p.Value != nil {
		base.Value = *p.Value
	}
	if p.HandlingNotes != nil {
		base.HandlingNotes = *p.HandlingNotes
	}
	return base
}

func mergeContact(base Contact, p ContactPatch) Contact {
	if p.Name != nil {
		base.Name = *p.Name
	}
	if p.Phone != nil {
		base.Phone = *p.Phone
	}
	if p.IDNumber != nil {
		base.IDNumber = *p.IDNumber
	}
	return base
}
