package pricingcfg_test

import (
	"testing"

	"shipping/internal/adapters/out/pricingcfg"
	"shipping/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource_ConfigFor(t *testing.T) {
	source, err := pricingcfg.NewStaticSource()
	require.NoError(t, err)

	t.Run("personal", func(t *testing.T) {
		cfg, err := source.ConfigFor(services.AccountPersonal)
		require.NoError(t, err)
		assert.Equal(t, services.AccountPersonal, cfg.AccountType)
		assert.InDelta(t, 12.5, cfg.BaseFee, 1e-9)
		assert.InDelta(t, 3.2, cfg.PerKgFee, 1e-9)
		assert.NotEmpty(t, cfg.BulkDiscountsByWeight)
		assert.Empty(t, cfg.BusinessParcelDiscounts)
		require.NoError(t, cfg.Validate())
	})

	t.Run("business", func(t *testing.T) {
		cfg, err := source.ConfigFor(services.AccountBusiness)
		require.NoError(t, err)
		assert.Equal(t, services.AccountBusiness, cfg.AccountType)
		assert.NotEmpty(t, cfg.BusinessParcelDiscounts)
		assert.Empty(t, cfg.BulkDiscountsByWeight)
		require.NoError(t, cfg.Validate())
	})

	t.Run("every_tier_priced", func(t *testing.T) {
		cfg, err := source.ConfigFor(services.AccountPersonal)
		require.NoError(t, err)
		for _, tier := range services.InsuranceTiers() {
			_, ok := cfg.InsuranceTierPrices[tier]
			assert.True(t, ok, "tier %s must have a price", tier)
		}
		assert.Zero(t, cfg.InsuranceTierPrices[services.InsuranceNone])
	})

	t.Run("unknown_account_type_rejected", func(t *testing.T) {
		_, err := source.ConfigFor(services.AccountUnknown)
		require.Error(t, err)
	})
}

func TestStaticSource_ReturnsCopies(t *testing.T) {
	source, err := pricingcfg.NewStaticSource()
	require.NoError(t, err)

	first, err := source.ConfigFor(services.AccountPersonal)
	require.NoError(t, err)
	first.BaseFee = 999

	second, err := source.ConfigFor(services.AccountPersonal)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, second.BaseFee, 1e-9)
}
