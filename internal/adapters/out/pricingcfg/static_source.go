// Package pricingcfg provides the pricing configuration source. The current
// rate card is compiled in; per-account overrides would move these tables to
// storage behind the same port.
package pricingcfg

import (
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"
)

// StaticSource serves the built-in rate card, one config per account type.
// Configs are validated once at construction. Callers must treat the returned
// config as read-only.
type StaticSource struct {
	configs map[services.AccountType]services.PricingConfig
}

// NewStaticSource creates the source and validates every config it serves.
func NewStaticSource() (*StaticSource, error) {
	configs := map[services.AccountType]services.PricingConfig{
		services.AccountPersonal: personalConfig(),
		services.AccountBusiness: businessConfig(),
	}

	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return &StaticSource{configs: configs}, nil
}

// ConfigFor returns the pricing configuration for the account type.
func (s *StaticSource) ConfigFor(accountType services.AccountType) (services.PricingConfig, error) {
	cfg, ok := s.configs[accountType]
	if !ok {
		return services.PricingConfig{}, errs.NewValueIsInvalidError("accountType")
	}
	return cfg, nil
}

func insurancePrices() map[services.InsuranceTier]float64 {
	return map[services.InsuranceTier]float64{
		services.InsuranceNone:     0,
		services.InsuranceBasic:    2,
		services.InsuranceStandard: 8,
		services.InsurancePremium:  25,
	}
}

func personalConfig() services.PricingConfig {
	return services.PricingConfig{
		BaseFee:     12.5,
		PerKgFee:    3.2,
		DimDivisor:  services.DefaultDimDivisor,
		AccountType: services.AccountPersonal,
		BulkDiscountsByWeight: []services.WeightDiscount{
			{MinKg: 20, Pct: 0.05},
			{MinKg: 50, Pct: 0.10},
		},
		InsuranceTierPrices: insurancePrices(),
	}
}

func businessConfig() services.PricingConfig {
	return services.PricingConfig{
		BaseFee:     12.5,
		PerKgFee:    3.2,
		DimDivisor:  services.DefaultDimDivisor,
		AccountType: services.AccountBusiness,
		BusinessParcelDiscounts: []services.ParcelDiscount{
			{MinParcels: 5, Pct: 0.05},
			{MinParcels: 10, Pct: 0.10},
		},
		InsuranceTierPrices: insurancePrices(),
	}
}
