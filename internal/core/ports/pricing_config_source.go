package ports

import (
	"shipping/internal/core/domain/services"
)

// PricingConfigSource supplies the pricing configuration for an account type.
// Implementations must return configs that already passed Validate; the
// pricing engine trusts its inputs.
type PricingConfigSource interface {
	ConfigFor(accountType services.AccountType) (services.PricingConfig, error)
}
