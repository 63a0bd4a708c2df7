// Package account holds the per-account records this core reads: API key
// credentials and the webhook subscription. Both are managed by an external
// collaborator and are read-only here.
package account

// Mode distinguishes live traffic from test traffic. It follows the API key
// the order was created with.
type Mode string

const (
	ModeLive Mode = "LIVE"
	ModeTest Mode = "TEST"
)

// Ref identifies the authenticated account behind an API key.
type Ref struct {
	ID   string
	Mode Mode
}

// WebhookConfig is an account's webhook subscription: the delivery endpoint
// and the set of event types the account wants to receive.
type WebhookConfig struct {
	URL    string
	Events []string
}

// Configured reports whether the account can receive webhooks at all.
func (c WebhookConfig) Configured() bool {
	return c.URL != ""
}

// Allows reports whether the account subscribed to the given event type.
func (c WebhookConfig) Allows(eventType string) bool {
	for _, e := range c.Events {
		if e == eventType {
			return true
		}
	}
	return false
}
