// Package accountrepo reads account credentials and webhook subscriptions.
// The rows are owned by the dashboard; this service only ever queries them.
package accountrepo

import (
	"encoding/json"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/account"
)

// AccountDTO is one merchant account with its webhook subscription.
type AccountDTO struct {
	ID            string `gorm:"type:text;primaryKey"`
	Name          string `gorm:"type:text"`
	WebhookURL    string `gorm:"type:text"`
	WebhookEvents string `gorm:"type:jsonb;default:'[]'"`
}

// TableName overrides GORM's default naming convention.
func (AccountDTO) TableName() string {
	return "accounts"
}

// APIKeyDTO is one API key credential. Live keys carry the sk_live_ prefix,
// test keys sk_test_; the mode column records which.
type APIKeyDTO struct {
	Key       string `gorm:"type:text;primaryKey"`
	AccountID string `gorm:"type:text;index"`
	Mode      string `gorm:"type:text"`
	Active    bool
}

// TableName overrides GORM's default naming convention.
func (APIKeyDTO) TableName() string {
	return "api_keys"
}

func webhookConfigFromDTO(dto AccountDTO) (account.WebhookConfig, error) {
	var events []string
	if dto.WebhookEvents != "" {
		if err := json.Unmarshal([]byte(dto.WebhookEvents), &events); err != nil {
			return account.WebhookConfig{}, err
		}
	}
	return account.WebhookConfig{
		URL:    dto.WebhookURL,
		Events: events,
	}, nil
}
