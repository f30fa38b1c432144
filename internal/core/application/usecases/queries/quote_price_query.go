// Package queries contains read operations for the CQRS architecture.
// Query handlers read directly from the database (or a view cache) and return
// plain read models; they never touch domain aggregates for writes.
package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrQuotePriceQueryIsNotConstructed = errors.New(
		"QuotePriceQuery must be created via NewQuotePriceQuery constructor",
	)
)

// QuotePriceQuery requests a price estimate for a prospective booking.
// Quoting is free of side effects: nothing is persisted and the quote is not
// reserved. The booking command reprices server-side, so a quote can go stale
// without risk.
type QuotePriceQuery struct {
	packages    []kernel.PackageDimensions
	accountType services.AccountType
	insurance   services.InsuranceTier
	parcelCount int

	guard guard.ConstructorGuard
}

// NewQuotePriceQuery creates a quote query. Validates package geometry,
// account type and insurance tier. A parcelCount of zero means len(packages).
func NewQuotePriceQuery(
	packages []kernel.PackageDimensions,
	accountType services.AccountType,
	insurance services.InsuranceTier,
	parcelCount int,
) (QuotePriceQuery, error) {
	if len(packages) == 0 {
		return QuotePriceQuery{}, errs.NewValueIsRequiredError("packages")
	}
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return QuotePriceQuery{}, err
		}
	}
	if err := accountType.Validate(); err != nil {
		return QuotePriceQuery{}, err
	}
	if err := insurance.Validate(); err != nil {
		return QuotePriceQuery{}, err
	}
	if parcelCount < 0 {
		return QuotePriceQuery{}, errs.NewValueIsInvalidError("parcelCount")
	}

	return QuotePriceQuery{
		packages:    packages,
		accountType: accountType,
		insurance:   insurance,
		parcelCount: parcelCount,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrQuotePriceQueryIsNotConstructed if validation fails.
func (q QuotePriceQuery) Validate() error {
	return q.guard.Validate(ErrQuotePriceQueryIsNotConstructed)
}

// Packages returns the parcels to quote.
func (q QuotePriceQuery) Packages() []kernel.PackageDimensions {
	return q.packages
}

// AccountType returns the account type for discount selection.
func (q QuotePriceQuery) AccountType() services.AccountType {
	return q.accountType
}

// Insurance returns the selected insurance tier.
func (q QuotePriceQuery) Insurance() services.InsuranceTier {
	return q.insurance
}

// ParcelCount returns the declared parcel count, zero meaning len(packages).
func (q QuotePriceQuery) ParcelCount() int {
	return q.parcelCount
}

// QuotePriceQueryResponse is the itemized quote shown to the customer.
// All monetary amounts are GBP rounded to the penny; TotalPence is the same
// total expressed in minor units for payment intent creation.
type QuotePriceQueryResponse struct {
	ChargeableWeightKg float64  `json:"chargeableWeightKg"`
	BaseFee            float64  `json:"baseFee"`
	WeightFee          float64  `json:"weightFee"`
	DiscountPct        float64  `json:"discountPct"`
	DiscountValue      float64  `json:"discountValue"`
	InsuranceFee       float64  `json:"insuranceFee"`
	SubTotal           float64  `json:"subTotal"`
	Total              float64  `json:"total"`
	TotalPence         int64    `json:"totalPence"`
	Notes              []string `json:"notes"`
}
