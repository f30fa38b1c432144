// Package consignmentrepo provides data transfer objects and mapping functions
// for consignment persistence. It implements the repository pattern for the
// consignment aggregate, handling conversion between domain entities and their
// relational representation across three tables: consignments, packages and
// timeline entries.
package consignmentrepo

import (
	"time"

	"shipping/internal/core/domain/model/consignment"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ConsignmentDTO represents the database structure for persisting consignment
// aggregates. The price breakdown is denormalized onto the row so the admin
// dashboard and tracking views never need to re-run the pricing engine.
type ConsignmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingRef string    `gorm:"type:varchar(16);uniqueIndex"`
	CustomerID  string    `gorm:"index"`
	Insurance   string
	Status      string `gorm:"index"`

	ChargeableWeightKg float64
	BaseFee            float64
	WeightFee          float64
	DiscountPct        float64
	DiscountValue      float64
	InsuranceFee       float64
	SubTotal           float64
	Total              float64
	PriceNotes         pq.StringArray `gorm:"type:text[]"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	Version   int

	Packages []PackageDTO       `gorm:"foreignKey:ConsignmentID;constraint:OnDelete:CASCADE"`
	Timeline []TimelineEntryDTO `gorm:"foreignKey:ConsignmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for consignment entities.
func (ConsignmentDTO) TableName() string {
	return "consignments"
}

// PackageDTO represents one booked parcel's geometry. Packages are immutable
// after booking; they are written once and never updated.
type PackageDTO struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	ConsignmentID uuid.UUID `gorm:"type:uuid;index"`
	Seq           int
	LengthCm      float64
	WidthCm       float64
	HeightCm      float64
	WeightKg      float64
}

// TableName specifies the database table name for package rows.
func (PackageDTO) TableName() string {
	return "consignment_packages"
}

// TimelineEntryDTO represents one recorded lifecycle event. The (consignment,
// seq) pair is unique so replaying an append is idempotent.
type TimelineEntryDTO struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	ConsignmentID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_timeline_consignment_seq"`
	Seq           int       `gorm:"uniqueIndex:idx_timeline_consignment_seq"`
	Status        string
	At            time.Time
}

// TableName specifies the database table name for timeline rows.
func (TimelineEntryDTO) TableName() string {
	return "consignment_timeline_entries"
}

// fromDomain converts a consignment aggregate to its database representation,
// including child package and timeline rows.
func fromDomain(aggregate *consignment.Consignment) ConsignmentDTO {
	id := aggregate.ID().Bytes()
	price := aggregate.Price()

	packages := aggregate.Packages()
	packageDTOs := make([]PackageDTO, 0, len(packages))
	for i, p := range packages {
		packageDTOs = append(packageDTOs, PackageDTO{
			ConsignmentID: id,
			Seq:           i,
			LengthCm:      p.LengthCm(),
			WidthCm:       p.WidthCm(),
			HeightCm:      p.HeightCm(),
			WeightKg:      p.WeightKg(),
		})
	}

	entries := aggregate.Timeline().Entries()
	timelineDTOs := make([]TimelineEntryDTO, 0, len(entries))
	for i, e := range entries {
		timelineDTOs = append(timelineDTOs, TimelineEntryDTO{
			ConsignmentID: id,
			Seq:           i,
			Status:        e.Status().String(),
			At:            e.At(),
		})
	}

	return ConsignmentDTO{
		ID:          id,
		TrackingRef: aggregate.TrackingRef().String(),
		CustomerID:  aggregate.CustomerID(),
		Insurance:   aggregate.Insurance().String(),
		Status:      aggregate.Status().String(),

		ChargeableWeightKg: price.ChargeableWeightKg,
		BaseFee:            price.BaseFee,
		WeightFee:          price.WeightFee,
		DiscountPct:        price.DiscountPct,
		DiscountValue:      price.DiscountValue,
		InsuranceFee:       price.InsuranceFee,
		SubTotal:           price.SubTotal,
		Total:              price.Total,
		PriceNotes:         pq.StringArray(price.Notes),

		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		Version:   aggregate.Version(),

		Packages: packageDTOs,
		Timeline: timelineDTOs,
	}
}

// toDomain converts a database DTO to a consignment aggregate. Child rows must
// already be loaded in seq order.
func toDomain(dto ConsignmentDTO) (*consignment.Consignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingRef, err := kernel.TrackingRefFromString(dto.TrackingRef)
	if err != nil {
		return nil, err
	}

	insurance, err := services.InsuranceTierFromString(dto.Insurance)
	if err != nil {
		return nil, err
	}

	status, err := consignment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	packages := make([]kernel.PackageDimensions, 0, len(dto.Packages))
	for _, p := range dto.Packages {
		pkg, pkgErr := kernel.NewPackageDimensions(p.LengthCm, p.WidthCm, p.HeightCm, p.WeightKg)
		if pkgErr != nil {
			return nil, pkgErr
		}
		packages = append(packages, pkg)
	}

	entries := make([]consignment.TimelineEntry, 0, len(dto.Timeline))
	for _, e := range dto.Timeline {
		entryStatus, statusErr := consignment.StatusFromString(e.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		entry, entryErr := consignment.NewTimelineEntry(entryStatus, e.At)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	timeline, err := consignment.RestoreTimeline(entries)
	if err != nil {
		return nil, err
	}

	var notes []string
	if len(dto.PriceNotes) > 0 {
		notes = []string(dto.PriceNotes)
	}

	price := services.PriceBreakdown{
		ChargeableWeightKg: dto.ChargeableWeightKg,
		BaseFee:            dto.BaseFee,
		WeightFee:          dto.WeightFee,
		DiscountPct:        dto.DiscountPct,
		DiscountValue:      dto.DiscountValue,
		InsuranceFee:       dto.InsuranceFee,
		SubTotal:           dto.SubTotal,
		Total:              dto.Total,
		Notes:              notes,
	}

	return consignment.RestoreConsignment(
		id,
		trackingRef,
		dto.CustomerID,
		packages,
		insurance,
		price,
		status,
		timeline,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}
