package services

import (
	"fmt"
	"math"
	"sort"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// DefaultDimDivisor is the standard volumetric divisor for cm³ -> kg
// conversion used when a config does not override it.
const DefaultDimDivisor = 5000.0

// AccountType distinguishes personal and business customers. The two types
// use mutually exclusive discount tables.
type AccountType int

const (
	// AccountUnknown is the invalid zero value.
	AccountUnknown AccountType = iota

	// AccountPersonal customers receive weight-based bulk discounts.
	AccountPersonal

	// AccountBusiness customers receive parcel-count discounts.
	AccountBusiness
)

func accountTypeStrings() map[AccountType]string {
	return map[AccountType]string{
		AccountPersonal: "PERSONAL",
		AccountBusiness: "BUSINESS",
	}
}

// AccountTypeFromString parses an account type received from an external
// source.
func AccountTypeFromString(s string) (AccountType, error) {
	for at, name := range accountTypeStrings() {
		if name == s {
			return at, nil
		}
	}
	return AccountUnknown, errs.NewValueIsInvalidErrorWithCause("accountType",
		fmt.Errorf("%q is not a valid account type", s))
}

// Validate checks membership in the account type set.
func (a AccountType) Validate() error {
	if _, ok := accountTypeStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("accountType",
			fmt.Errorf("%d is not a valid account type", a))
	}
	return nil
}

// String returns the stable wire name, or "UNKNOWN" for out-of-set values.
func (a AccountType) String() string {
	if name, ok := accountTypeStrings()[a]; ok {
		return name
	}
	return "UNKNOWN"
}

// InsuranceTier is a flat-priced optional coverage level. Each tier maps to a
// fixed price (carried in PricingConfig) and an advertised maximum payout,
// which is informational only; the engine never computes percentage-of-value
// premiums.
type InsuranceTier int

const (
	// InsuranceUnknown is the invalid zero value.
	InsuranceUnknown InsuranceTier = iota

	// InsuranceNone declines coverage.
	InsuranceNone

	// InsuranceBasic covers up to £100.
	InsuranceBasic

	// InsuranceStandard covers up to £500.
	InsuranceStandard

	// InsurancePremium covers up to £2000.
	InsurancePremium
)

func insuranceTierStrings() map[InsuranceTier]string {
	return map[InsuranceTier]string{
		InsuranceNone:     "NONE",
		InsuranceBasic:    "BASIC",
		InsuranceStandard: "STANDARD",
		InsurancePremium:  "PREMIUM",
	}
}

// InsuranceTiers returns all valid tiers in ascending coverage order.
func InsuranceTiers() []InsuranceTier {
	return []InsuranceTier{InsuranceNone, InsuranceBasic, InsuranceStandard, InsurancePremium}
}

// InsuranceTierFromString parses a tier received from an external source.
func InsuranceTierFromString(s string) (InsuranceTier, error) {
	for tier, name := range insuranceTierStrings() {
		if name == s {
			return tier, nil
		}
	}
	return InsuranceUnknown, errs.NewValueIsInvalidErrorWithCause("insuranceTier",
		fmt.Errorf("%q is not a valid insurance tier", s))
}

// Validate checks membership in the tier set.
func (t InsuranceTier) Validate() error {
	if _, ok := insuranceTierStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("insuranceTier",
			fmt.Errorf("%d is not a valid insurance tier", t))
	}
	return nil
}

// String returns the stable wire name, or "UNKNOWN" for out-of-set values.
func (t InsuranceTier) String() string {
	if name, ok := insuranceTierStrings()[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// MaxCoverGBP returns the advertised maximum payout for the tier. The value
// is shown to customers; the engine itself only uses the flat tier price.
func (t InsuranceTier) MaxCoverGBP() float64 {
	switch t {
	case InsuranceBasic:
		return 100
	case InsuranceStandard:
		return 500
	case InsurancePremium:
		return 2000
	default:
		return 0
	}
}

// WeightDiscount is one tier of the personal bulk-discount table: shipments
// whose chargeable weight meets MinKg earn Pct off.
type WeightDiscount struct {
	MinKg float64
	Pct   float64
}

// ParcelDiscount is one tier of the business discount table: bookings of at
// least MinParcels parcels earn Pct off.
type ParcelDiscount struct {
	MinParcels int
	Pct        float64
}

// PricingConfig carries everything the pricing engine needs apart from the
// packages themselves. It is a value object: the engine never mutates it.
// Validate at load time, not per pricing call.
type PricingConfig struct {
	// BaseFee is the flat booking fee in GBP.
	BaseFee float64

	// PerKgFee is the price per chargeable kilogram in GBP.
	PerKgFee float64

	// DimDivisor converts cm³ to volumetric kg. Zero means DefaultDimDivisor.
	DimDivisor float64

	// AccountType selects which discount table applies. The tables are never
	// combined.
	AccountType AccountType

	// BulkDiscountsByWeight is the PERSONAL table, keyed by chargeable weight.
	// Optional; nil means no weight discounts.
	BulkDiscountsByWeight []WeightDiscount

	// BusinessParcelDiscounts is the BUSINESS table, keyed by parcel count.
	// Optional; nil means no parcel discounts.
	BusinessParcelDiscounts []ParcelDiscount

	// InsuranceTierPrices maps each tier to its flat price in GBP.
	InsuranceTierPrices map[InsuranceTier]float64
}

// Validate enforces the config invariants: every discount pct in [0,1), every
// tier price non-negative, divisor positive (or zero for the default), and a
// price for every tier. Call it once where the config is loaded.
func (c PricingConfig) Validate() error {
	if c.BaseFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("baseFee", fmt.Errorf("%v is negative", c.BaseFee))
	}
	if c.PerKgFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("perKgFee", fmt.Errorf("%v is negative", c.PerKgFee))
	}
	if c.DimDivisor < 0 || math.IsNaN(c.DimDivisor) {
		return errs.NewValueIsInvalidErrorWithCause("dimDivisor", fmt.Errorf("%v is not positive", c.DimDivisor))
	}
	if err := c.AccountType.Validate(); err != nil {
		return err
	}

	for _, d := range c.BulkDiscountsByWeight {
		if d.Pct < 0 || d.Pct >= 1 {
			return errs.NewValueIsOutOfRangeError("bulkDiscountsByWeight pct", d.Pct, 0, 1)
		}
		if d.MinKg < 0 {
			return errs.NewValueIsInvalidErrorWithCause("bulkDiscountsByWeight minKg",
				fmt.Errorf("%v is negative", d.MinKg))
		}
	}
	for _, d := range c.BusinessParcelDiscounts {
		if d.Pct < 0 || d.Pct >= 1 {
			return errs.NewValueIsOutOfRangeError("businessParcelDiscounts pct", d.Pct, 0, 1)
		}
		if d.MinParcels < 0 {
			return errs.NewValueIsInvalidErrorWithCause("businessParcelDiscounts minParcels",
				fmt.Errorf("%d is negative", d.MinParcels))
		}
	}

	for _, tier := range InsuranceTiers() {
		price, ok := c.InsuranceTierPrices[tier]
		if !ok {
			return errs.NewValueIsRequiredError(fmt.Sprintf("insuranceTierPrices[%s]", tier))
		}
		if price < 0 {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("insuranceTierPrices[%s]", tier),
				fmt.Errorf("%v is negative", price))
		}
	}

	return nil
}

// PriceBreakdown is the immutable, fully itemized result of one pricing call.
// A fresh value is built on every call and owned solely by the caller.
// ChargeableWeightKg is reported to one decimal place; all monetary fields
// are rounded to the penny.
type PriceBreakdown struct {
	ChargeableWeightKg float64
	BaseFee            float64
	WeightFee          float64
	DiscountPct        float64
	DiscountValue      float64
	InsuranceFee       float64

	// SubTotal is the amount after discount, before insurance.
	SubTotal float64

	// Total is the final amount payable.
	Total float64

	// Notes are human-readable lines describing which discount and insurance
	// tier were applied, plus the chargeable-weight rule.
	Notes []string
}

// TotalMinorUnits converts the total to the smallest currency unit (pence),
// the amount handed to the payment collaborator for intent creation.
func (b PriceBreakdown) TotalMinorUnits() int64 {
	return int64(math.Round(b.Total * 100))
}

// DimensionalWeight computes the volumetric weight of one parcel in
// kilograms: L×W×H divided by the divisor. A zero divisor means
// DefaultDimDivisor. Geometry is trusted as already validated; the engine
// raises no errors by design.
func DimensionalWeight(p kernel.PackageDimensions, divisor float64) float64 {
	if divisor == 0 {
		divisor = DefaultDimDivisor
	}
	return (p.LengthCm() * p.WidthCm() * p.HeightCm()) / divisor
}

// ChargeableWeight computes the billing weight of a shipment: for each parcel
// the greater of actual and volumetric weight, summed, then rounded UP to the
// nearest 0.1 kg. The result is always at least the plain sum of actual
// weights and at least the plain sum of volumetric weights.
func ChargeableWeight(packages []kernel.PackageDimensions, divisor float64) float64 {
	sum := 0.0
	for _, p := range packages {
		sum += math.Max(p.WeightKg(), DimensionalWeight(p, divisor))
	}
	return CeilToTenthKg(sum)
}

// CalcPrice computes a deterministic, fully itemized price for a shipment.
//
// Discount selection is account-type-exclusive: BUSINESS configs consult only
// BusinessParcelDiscounts (keyed by parcelCount), PERSONAL configs only
// BulkDiscountsByWeight (keyed by chargeable weight). Within a table the
// highest threshold the shipment meets wins, regardless of table order.
// Insurance is a flat per-tier price. A parcelCount of zero defaults to
// len(packages).
//
// CalcPrice is pure: no I/O, no side effects, no hidden state. All inputs are
// treated as already validated.
func CalcPrice(
	packages []kernel.PackageDimensions,
	cfg PricingConfig,
	tier InsuranceTier,
	parcelCount int,
) PriceBreakdown {
	notes := make([]string, 0, 3)

	divisor := cfg.DimDivisor
	if divisor == 0 {
		divisor = DefaultDimDivisor
	}
	if parcelCount == 0 {
		parcelCount = len(packages)
	}

	cw := ChargeableWeight(packages, divisor)
	weightFee := RoundToPence(cw * cfg.PerKgFee)
	subBeforeDiscount := RoundToPence(cfg.BaseFee + weightFee)

	discountPct := 0.0
	switch cfg.AccountType {
	case AccountBusiness:
		discountPct = pickParcelDiscount(parcelCount, cfg.BusinessParcelDiscounts)
		if discountPct > 0 {
			notes = append(notes, fmt.Sprintf("Business parcel-count discount: %d%%.",
				int(math.Round(discountPct*100))))
		}
	default:
		discountPct = pickWeightDiscount(cw, cfg.BulkDiscountsByWeight)
		if discountPct > 0 {
			notes = append(notes, fmt.Sprintf("Weight-based discount: %d%%.",
				int(math.Round(discountPct*100))))
		}
	}

	discountValue := RoundToPence(subBeforeDiscount * discountPct)
	subAfterDiscount := RoundToPence(subBeforeDiscount - discountValue)

	insuranceFee := RoundToPence(cfg.InsuranceTierPrices[tier])
	if insuranceFee > 0 {
		notes = append(notes, fmt.Sprintf("Fixed-price insurance applied: %s (£%.2f).", tier, insuranceFee))
	}

	total := RoundToPence(subAfterDiscount + insuranceFee)

	notes = append(notes, fmt.Sprintf("Chargeable weight is max(actual, volumetric) (divisor %g).", divisor))

	return PriceBreakdown{
		ChargeableWeightKg: cw,
		BaseFee:            cfg.BaseFee,
		WeightFee:          weightFee,
		DiscountPct:        discountPct,
		DiscountValue:      discountValue,
		InsuranceFee:       insuranceFee,
		SubTotal:           subAfterDiscount,
		Total:              total,
		Notes:              notes,
	}
}

// pickWeightDiscount selects the personal discount: the highest MinKg tier
// the chargeable weight meets. Ties on equal thresholds keep the larger one
// by sorting descending before the scan.
func pickWeightDiscount(chargeableKg float64, tiers []WeightDiscount) float64 {
	sorted := make([]WeightDiscount, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinKg > sorted[j].MinKg })

	for _, t := range sorted {
		if chargeableKg >= t.MinKg {
			return t.Pct
		}
	}
	return 0
}

// pickParcelDiscount selects the business discount: the highest MinParcels
// tier the booking's parcel count meets.
func pickParcelDiscount(parcelCount int, tiers []ParcelDiscount) float64 {
	sorted := make([]ParcelDiscount, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinParcels > sorted[j].MinParcels })

	for _, t := range sorted {
		if parcelCount >= t.MinParcels {
			return t.Pct
		}
	}
	return 0
}
