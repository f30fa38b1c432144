package kernel

import (
	"errors"
	"fmt"
	"math"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrPackageDimensionsAreNotConstructed is returned when validating a
// zero-value PackageDimensions. Use NewPackageDimensions.
var ErrPackageDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"package dimensions must be created via NewPackageDimensions")

// PackageDimensions describes one physical parcel: its edge lengths in
// centimetres and its actual weight in kilograms. It is immutable once
// constructed; the pricing engine trusts it without re-validating, so all
// geometry checks happen here, at the boundary where external data enters
// the core.
type PackageDimensions struct { //nolint:recvcheck //using for validation
	lengthCm float64
	widthCm  float64
	heightCm float64
	weightKg float64

	guard guard.ConstructorGuard
}

// NewPackageDimensions creates a validated parcel geometry. All values must be
// finite and non-negative; weight and dimensions of zero are accepted (an
// envelope has effectively zero volume) but negative or NaN values are not.
func NewPackageDimensions(lengthCm, widthCm, heightCm, weightKg float64) (PackageDimensions, error) {
	p := PackageDimensions{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setDimension("lengthCm", lengthCm, &p.lengthCm),
		p.setDimension("widthCm", widthCm, &p.widthCm),
		p.setDimension("heightCm", heightCm, &p.heightCm),
		p.setDimension("weightKg", weightKg, &p.weightKg),
	); err != nil {
		return PackageDimensions{}, err
	}

	return p, nil
}

// LengthCm returns the parcel length in centimetres.
func (p PackageDimensions) LengthCm() float64 {
	return p.lengthCm
}

// WidthCm returns the parcel width in centimetres.
func (p PackageDimensions) WidthCm() float64 {
	return p.widthCm
}

// HeightCm returns the parcel height in centimetres.
func (p PackageDimensions) HeightCm() float64 {
	return p.heightCm
}

// WeightKg returns the actual (scale) weight in kilograms.
func (p PackageDimensions) WeightKg() float64 {
	return p.weightKg
}

// Validate returns ErrPackageDimensionsAreNotConstructed for the zero value.
func (p PackageDimensions) Validate() error {
	return p.guard.Validate(ErrPackageDimensionsAreNotConstructed)
}

func (p *PackageDimensions) setDimension(name string, value float64, target *float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is not a finite number", value))
	}
	if value < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is negative", value))
	}

	*target = value
	return nil
}
