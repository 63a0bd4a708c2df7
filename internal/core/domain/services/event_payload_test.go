package services_test

import (
	"encoding/json"
	"testing"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEvent_Envelope(t *testing.T) {
	after := snapshot(t, func(r *order.Restored) {
		r.Status = order.DriverAssigned
		r.Driver = &order.Driver{ID: "d1", Name: "Alois", Phone: "+254712345678", Plate: "KMD 123J"}
		r.Metadata = map[string]string{"po_number": "PO-17"}
	})

	evt := services.BuildEvent(services.Transition{Type: services.EventFulfillmentAllocated}, after, "KES", baseTime)

	assert.Equal(t, "event", evt.Object)
	assert.Equal(t, services.EventFulfillmentAllocated, evt.Type)
	assert.Equal(t, baseTime.Unix(), evt.Created)
	assert.Contains(t, evt.ID, "evt_")
	assert.Equal(t, "ord_test1", evt.Data.OrderID)
	assert.Equal(t, "driver_assigned", evt.Data.Status)
	assert.Equal(t, 250, evt.Data.Amount)
	assert.Equal(t, 250, evt.Data.Price)
	assert.Equal(t, "KES", evt.Data.Currency)
	assert.Equal(t, map[string]string{"po_number": "PO-17"}, evt.Data.Metadata)
	require.NotNil(t, evt.Data.Driver)
	assert.Equal(t, "d1", evt.Data.Driver.ID)
}

// Encoding and decoding an arrived_stop event for stop index 2 must
// round-trip the index and the matched stop's address.
func TestBuildEvent_StopEnrichmentRoundTrip(t *testing.T) {
	after := snapshot(t, withStops(makeStops(t, order.StopCompleted, order.StopCompleted, order.StopArrived)))

	evt := services.BuildEvent(services.Transition{
		Type:      services.EventFulfillmentArrivedStop,
		StopIndex: 2,
		HasStop:   true,
	}, after, "KES", baseTime)

	raw, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded services.Event
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.NotNil(t, decoded.Data.StopIndex)
	assert.Equal(t, 2, *decoded.Data.StopIndex)
	require.NotNil(t, decoded.Data.StopDetails)
	assert.Equal(t, after.Stops()[2].Address(), decoded.Data.StopDetails.Address)
	assert.Equal(t, "pickup", decoded.Data.StopDetails.Type)
	assert.Equal(t, "Supplier A", decoded.Data.StopDetails.Name)
}

func TestBuildEvent_DriverOnNonFulfillmentEvents(t *testing.T) {
	// A cancelled order that already had a driver still carries the
	// driver block.
	after := snapshot(t, func(r *order.Restored) {
		r.Status = order.Cancelled
		r.Driver = &order.Driver{ID: "d1"}
	})

	evt := services.BuildEvent(services.Transition{Type: services.EventOrderCancelled}, after, "KES", baseTime)

	require.NotNil(t, evt.Data.Driver)
	assert.Equal(t, "d1", evt.Data.Driver.ID)
	assert.Equal(t, "", evt.Data.Driver.Name) // missing optionals are empty strings
}

func TestBuildEvent_NeverFails(t *testing.T) {
	t.Run("no driver, no stops, no metadata", func(t *testing.T) {
		after := snapshot(t, nil)

		evt := services.BuildEvent(services.Transition{Type: services.EventOrderUpdated}, after, "KES", baseTime)

		assert.Nil(t, evt.Data.Driver)
		assert.Nil(t, evt.Data.StopIndex)
		assert.NotNil(t, evt.Data.Metadata)

		raw, err := json.Marshal(evt)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"metadata":{}`)
	})

	t.Run("stop index out of range is skipped, not a panic", func(t *testing.T) {
		after := snapshot(t, nil)

		evt := services.BuildEvent(services.Transition{
			Type:      services.EventFulfillmentArrivedStop,
			StopIndex: 5,
			HasStop:   true,
		}, after, "KES", baseTime)

		assert.Nil(t, evt.Data.StopDetails)
	})
}
