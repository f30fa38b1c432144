package http

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface. Structural validation happens here at the boundary; domain
// constructors re-validate semantics.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the boundary validator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PackageRequest is one parcel's geometry in centimetres and kilograms.
type PackageRequest struct {
	LengthCm float64 `json:"lengthCm" validate:"required,gt=0"`
	WidthCm  float64 `json:"widthCm" validate:"required,gt=0"`
	HeightCm float64 `json:"heightCm" validate:"required,gt=0"`
	WeightKg float64 `json:"weightKg" validate:"required,gt=0"`
}

// QuoteRequest asks for a price estimate without booking anything.
type QuoteRequest struct {
	Packages    []PackageRequest `json:"packages" validate:"required,min=1,max=50,dive"`
	AccountType string           `json:"accountType" validate:"required,oneof=PERSONAL BUSINESS"`
	Insurance   string           `json:"insurance" validate:"required,oneof=NONE BASIC STANDARD PREMIUM"`
	ParcelCount int              `json:"parcelCount" validate:"gte=0"`
}

// CreateConsignmentRequest books a shipment. The price is recomputed
// server-side; clients cannot submit an amount.
type CreateConsignmentRequest struct {
	CustomerID  string           `json:"customerId" validate:"required,max=128"`
	Packages    []PackageRequest `json:"packages" validate:"required,min=1,max=50,dive"`
	AccountType string           `json:"accountType" validate:"required,oneof=PERSONAL BUSINESS"`
	Insurance   string           `json:"insurance" validate:"required,oneof=NONE BASIC STANDARD PREMIUM"`
	ParcelCount int              `json:"parcelCount" validate:"gte=0"`
}

// CreateConsignmentResponse returns the identifiers the customer needs to
// pay for and track the booking.
type CreateConsignmentResponse struct {
	ID          uuid.UUID `json:"id"`
	TrackingRef string    `json:"trackingRef"`
}

// UpdateStatusRequest records a lifecycle event for a consignment.
// OccurredAt is optional; a missing value means the server receive time.
type UpdateStatusRequest struct {
	Status     string     `json:"status" validate:"required,oneof=CREATED PICKED_UP IN_TRANSIT CUSTOMS OUT_FOR_DELIVERY DELIVERED"`
	OccurredAt *time.Time `json:"occurredAt" validate:"omitempty"`
}

// toPackages converts boundary package DTOs into domain value objects.
func toPackages(reqs []PackageRequest) ([]kernel.PackageDimensions, error) {
	packages := make([]kernel.PackageDimensions, 0, len(reqs))
	for _, r := range reqs {
		p, err := kernel.NewPackageDimensions(r.LengthCm, r.WidthCm, r.HeightCm, r.WeightKg)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, nil
}

// parseAccountAndTier converts wire enum strings into domain enums.
func parseAccountAndTier(accountType, insurance string) (services.AccountType, services.InsuranceTier, error) {
	at, err := services.AccountTypeFromString(accountType)
	if err != nil {
		return services.AccountUnknown, services.InsuranceUnknown, err
	}
	tier, err := services.InsuranceTierFromString(insurance)
	if err != nil {
		return services.AccountUnknown, services.InsuranceUnknown, err
	}
	return at, tier, nil
}
