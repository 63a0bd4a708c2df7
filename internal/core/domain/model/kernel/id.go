// Package kernel contains shared domain primitives. Identifiers are opaque
// prefixed strings ("ord_…", "stop_…", "evt_…") so they stay readable in
// logs, URLs and webhook payloads while remaining collision-safe.
package kernel

import (
	"fmt"
	"strings"
	"time"

	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrIDIsNotConstructed indicates that an ID was not created through one of
// the constructor functions. Returned when validating a zero-value ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID, IDFromString or one of the typed constructors")

// ID is a value object wrapping an opaque, prefixed identifier.
// The zero value is invalid; construct via NewID, NewOrderID, NewStopID,
// NewEventID or IDFromString. ID is immutable and safe for concurrent use.
type ID struct {
	value string
}

// NewID generates a random identifier with the given prefix, e.g.
// NewID("ord") -> "ord_3f2b9c…". Randomness comes from a v4 UUID.
func NewID(prefix string) ID {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ID{value: fmt.Sprintf("%s_%s", prefix, raw[:20])}
}

// NewOrderID generates an identifier for a new order.
func NewOrderID() ID {
	return NewID("ord")
}

// NewStopID generates an identifier for a route stop. Stop ids are stable
// for the life of the order that owns them.
func NewStopID() ID {
	return NewID("stop")
}

// NewEventID generates an identifier for an outbound event. The millisecond
// timestamp prefix keeps ids roughly monotonic; the random suffix makes them
// collision-safe within a burst.
func NewEventID() ID {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ID{value: fmt.Sprintf("evt_%d%s", time.Now().UnixMilli(), raw[:6])}
}

// IDFromString reconstructs an ID from its string form, typically when
// loading from persistence or parsing a request path.
// Returns an error for the empty string.
func IDFromString(s string) (ID, error) {
	if s == "" {
		return ID{}, errs.NewValueIsRequiredError("id")
	}
	return ID{value: s}, nil
}

// String returns the identifier in its external string form.
func (id ID) String() string {
	return id.value
}

// IsZero reports whether the ID is the invalid zero value.
func (id ID) IsZero() bool {
	return id.value == ""
}

// Validate returns ErrIDIsNotConstructed for a zero-value ID.
func (id ID) Validate() error {
	if id.IsZero() {
		return ErrIDIsNotConstructed
	}
	return nil
}

// IsEqual compares two identifiers by value.
func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}
