// Package metrics defines the Prometheus instrumentation for the order
// service. Counters are registered on the default registry and exposed by
// the HTTP server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsDetected counts transition events produced by order updates,
	// labelled by event type.
	EventsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_detected_total",
			Help: "Total number of transition events detected from order updates",
		},
		[]string{"type"},
	)

	// WebhookDeliveries counts webhook delivery attempts by outcome:
	// delivered, failed, skipped or dead_letter.
	WebhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_deliveries_total",
			Help: "Total number of webhook delivery attempts by outcome",
		},
		[]string{"outcome"},
	)

	// APIRequests counts integrator API requests by endpoint and status code.
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of integrator API requests",
		},
		[]string{"endpoint", "status"},
	)
)
