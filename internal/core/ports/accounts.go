package ports

import (
	"context"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/account"
)

// AccountResolver authenticates an API key and resolves it to the owning
// account and its live/test mode.
type AccountResolver interface {
	// ResolveAccount returns the account behind an active API key, or
	// errs.ObjectNotFoundError for unknown or inactive keys.
	ResolveAccount(ctx context.Context, apiKey string) (account.Ref, error)
}

// WebhookConfigProvider reads an account's webhook subscription.
// The configuration is owned by an external collaborator; this core only
// ever reads it.
type WebhookConfigProvider interface {
	// GetWebhookConfig returns the account's subscription. An account with
	// no configuration yields a zero WebhookConfig, not an error.
	GetWebhookConfig(ctx context.Context, accountID string) (account.WebhookConfig, error)
}
