package accountrepo

import (
	"context"
	"errors"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/account"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAccountRepository implements ports.AccountResolver and
// ports.WebhookConfigProvider over the dashboard-owned tables.
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GORM account repository.
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// ResolveAccount returns the account behind an active API key. Unknown and
// deactivated keys are indistinguishable to the caller.
func (r *GormAccountRepository) ResolveAccount(ctx context.Context, apiKey string) (account.Ref, error) {
	if apiKey == "" {
		return account.Ref{}, errs.NewValueIsRequiredError("apiKey")
	}

	var dto APIKeyDTO
	err := r.db.WithContext(ctx).First(&dto, "key = ? AND active", apiKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account.Ref{}, errs.NewObjectNotFoundError("apiKey", "redacted")
		}
		return account.Ref{}, err
	}

	return account.Ref{
		ID:   dto.AccountID,
		Mode: account.Mode(dto.Mode),
	}, nil
}

// GetWebhookConfig returns the account's webhook subscription. An account
// without one yields a zero config so the relay can skip silently.
func (r *GormAccountRepository) GetWebhookConfig(ctx context.Context, accountID string) (account.WebhookConfig, error) {
	var dto AccountDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account.WebhookConfig{}, nil
		}
		return account.WebhookConfig{}, err
	}

	return webhookConfigFromDTO(dto)
}
