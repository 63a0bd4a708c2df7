package ports

import "context"

// WebhookClient performs one delivery attempt of an event payload to a
// subscriber endpoint. An attempt is terminal either way: retries are the
// relay job's concern, not the client's.
type WebhookClient interface {
	// Send POSTs the JSON payload to url. Any non-2xx response or transport
	// error is returned as a failure.
	Send(ctx context.Context, url string, payload []byte) error
}
