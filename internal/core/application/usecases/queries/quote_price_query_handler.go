package queries

import (
	"context"

	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// QuotePriceQueryHandler computes price quotes from the current pricing
// configuration. Quoting never touches storage; two identical queries against
// the same configuration return identical responses.
type QuotePriceQueryHandler struct {
	configs ports.PricingConfigSource
}

// NewQuotePriceQueryHandler creates a handler for quote queries.
func NewQuotePriceQueryHandler(configs ports.PricingConfigSource) QuotePriceQueryHandler {
	return QuotePriceQueryHandler{configs: configs}
}

// Handle prices the requested packages and returns the itemized quote.
func (h QuotePriceQueryHandler) Handle(
	_ context.Context,
	query QuotePriceQuery,
) (QuotePriceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuotePriceQueryResponse{}, err
	}

	cfg, err := h.configs.ConfigFor(query.AccountType())
	if err != nil {
		return QuotePriceQueryResponse{}, err
	}

	breakdown := services.CalcPrice(query.Packages(), cfg, query.Insurance(), query.ParcelCount())

	return QuotePriceQueryResponse{
		ChargeableWeightKg: breakdown.ChargeableWeightKg,
		BaseFee:            breakdown.BaseFee,
		WeightFee:          breakdown.WeightFee,
		DiscountPct:        breakdown.DiscountPct,
		DiscountValue:      breakdown.DiscountValue,
		InsuranceFee:       breakdown.InsuranceFee,
		SubTotal:           breakdown.SubTotal,
		Total:              breakdown.Total,
		TotalPence:         breakdown.TotalMinorUnits(),
		Notes:              breakdown.Notes,
	}, nil
}
