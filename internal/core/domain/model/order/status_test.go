package order_test

import (
	"testing"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	valid := []order.Status{
		order.Pending, order.DriverAssigned, order.ArrivedPickup,
		order.InTransit, order.ArrivedDropoff, order.Delivered,
		order.Cancelled, order.DeliveryFailed,
	}
	for _, s := range valid {
		require.NoError(t, s.Validate(), s)
	}

	require.Error(t, order.Status("picked_up").Validate())
	require.Error(t, order.Status("").Validate())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{"initial assignment", order.Pending, order.DriverAssigned, true},
		{"reassignment self-transition", order.DriverAssigned, order.DriverAssigned, true},
		{"arrival at pickup", order.DriverAssigned, order.ArrivedPickup, true},
		{"skip arrival, straight to transit", order.DriverAssigned, order.InTransit, true},
		{"pickup to transit", order.ArrivedPickup, order.InTransit, true},
		{"transit to dropoff arrival", order.InTransit, order.ArrivedDropoff, true},
		{"dropoff arrival to delivered", order.ArrivedDropoff, order.Delivered, true},
		{"no backward move", order.InTransit, order.DriverAssigned, false},
		{"no backward move to pending", order.DriverAssigned, order.Pending, false},
		{"cancel from pending", order.Pending, order.Cancelled, true},
		{"cancel from transit", order.InTransit, order.Cancelled, true},
		{"cancel from delivered", order.Delivered, order.Cancelled, false},
		{"fail from transit", order.InTransit, order.DeliveryFailed, true},
		{"fail from dropoff arrival", order.ArrivedDropoff, order.DeliveryFailed, true},
		{"fail from pending", order.Pending, order.DeliveryFailed, false},
		{"retry flow re-enters pending", order.DeliveryFailed, order.Pending, true},
		{"delivered is terminal", order.Delivered, order.InTransit, false},
		{"cancelled is terminal", order.Cancelled, order.Pending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_Guards(t *testing.T) {
	t.Run("pickup editable only while pending", func(t *testing.T) {
		assert.True(t, order.Pending.AllowsPickupChange())

		locked := []order.Status{
			order.DriverAssigned, order.ArrivedPickup, order.InTransit,
			order.ArrivedDropoff, order.Delivered, order.Cancelled,
		}
		for _, s := range locked {
			assert.False(t, s.AllowsPickupChange(), s)
		}
	})

	t.Run("route editable until terminal", func(t *testing.T) {
		assert.True(t, order.Pending.AllowsRouteChange())
		assert.True(t, order.InTransit.AllowsRouteChange())
		assert.True(t, order.DeliveryFailed.AllowsRouteChange())
		assert.False(t, order.Delivered.AllowsRouteChange())
		assert.False(t, order.Cancelled.AllowsRouteChange())
	})

	t.Run("cancellation window closes at pickup", func(t *testing.T) {
		assert.True(t, order.Pending.AllowsCancellation())
		assert.True(t, order.DriverAssigned.AllowsCancellation())
		assert.True(t, order.ArrivedPickup.AllowsCancellation())
		assert.False(t, order.InTransit.AllowsCancellation())
		assert.True(t, order.ArrivedDropoff.AllowsCancellation())
		assert.False(t, order.Delivered.AllowsCancellation())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.DeliveryFailed.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
}
