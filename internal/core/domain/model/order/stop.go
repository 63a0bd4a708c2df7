package order

import (
	"fmt"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"
)

// StopType classifies a route stop.
type StopType string

const (
	StopTypePickup   StopType = "pickup"
	StopTypeWaypoint StopType = "waypoint"
	StopTypeDropoff  StopType = "dropoff"
)

// Validate checks that the StopType is one of the known kinds.
func (t StopType) Validate() error {
	switch t {
	case StopTypePickup, StopTypeWaypoint, StopTypeDropoff:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("stop.type",
			fmt.Errorf("%q is not a valid stop type", string(t)))
	}
}

// StopStatus tracks a driver's progress through a stop:
// pending → arrived → completed.
type StopStatus string

const (
	StopPending   StopStatus = "pending"
	StopArrived   StopStatus = "arrived"
	StopCompleted StopStatus = "completed"
)

// Validate checks that the StopStatus is one of the known states.
func (s StopStatus) Validate() error {
	switch s {
	case StopPending, StopArrived, StopCompleted:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("stop.status",
			fmt.Errorf("%q is not a valid stop status", string(s)))
	}
}

func (s StopStatus) rank() int {
	switch s {
	case StopPending:
		return 0
	case StopArrived:
		return 1
	case StopCompleted:
		return 2
	default:
		return -1
	}
}

// StopContact is the person to meet at a stop.
type StopContact struct {
	Name  string
	Phone string
}

// Stop is an ordered waypoint within an order's route. Stops are owned
// exclusively by their parent order; their position in the order's stop
// sequence is the sequence of traversal. A stop's id is generated once and
// stays stable for the life of the order.
type Stop struct {
	id           kernel.ID
	address      string
	stopType     StopType
	status       StopStatus
	contact      StopContact
	instructions string
}

// NewStop creates a pending stop with a generated id. The address is
// required; an empty stop type defaults to pickup.
func NewStop(address string, stopType StopType, contact StopContact, instructions string) (Stop, error) {
	if address == "" {
		return Stop{}, errs.NewValueIsRequiredError("stop.address")
	}
	if stopType == "" {
		stopType = StopTypePickup
	}
	if err := stopType.Validate(); err != nil {
		return Stop{}, err
	}

	return Stop{
		id:           kernel.NewStopID(),
		address:      address,
		stopType:     stopType,
		status:       StopPending,
		contact:      contact,
		instructions: instructions,
	}, nil
}

// RestoreStop reconstructs a stop from persistence without generating a new id.
func RestoreStop(id kernel.ID, address string, stopType StopType, status StopStatus, contact StopContact, instructions string) (Stop, error) {
	if err := id.Validate(); err != nil {
		return Stop{}, err
	}
	if address == "" {
		return Stop{}, errs.NewValueIsRequiredError("stop.address")
	}
	if err := stopType.Validate(); err != nil {
		return Stop{}, err
	}
	if err := status.Validate(); err != nil {
		return Stop{}, err
	}

	return Stop{
		id:           id,
		address:      address,
		stopType:     stopType,
		status:       status,
		contact:      contact,
		instructions: instructions,
	}, nil
}

// ID returns the stop's stable identifier.
func (s Stop) ID() kernel.ID { return s.id }

// Address returns the stop's address.
func (s Stop) Address() string { return s.address }

// Type returns the stop's kind.
func (s Stop) Type() StopType { return s.stopType }

// Status returns the driver's progress through the stop.
func (s Stop) Status() StopStatus { return s.status }

// Contact returns the person to meet at the stop.
func (s Stop) Contact() StopContact { return s.contact }

// Instructions returns the driver-facing notes for the stop.
func (s Stop) Instructions() string { return s.instructions }
