package consignmentrepo

import (
	"context"
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/consignment"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConsignmentRepository implements ConsignmentRepository using GORM.
type GormConsignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormConsignmentRepository creates a new GORM consignment repository.
func NewGormConsignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormConsignmentRepository {
	return &GormConsignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a freshly booked consignment, including its package and timeline
// rows, in one insert.
func (r *GormConsignmentRepository) Add(ctx context.Context, aggregate *consignment.Consignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists a status change. The row is updated only if its stored
// version still matches the version the aggregate was loaded with; a stale
// aggregate fails with errs.VersionIsInvalidError. New timeline entries are
// inserted idempotently, keyed on (consignment_id, seq). Package rows are
// immutable and never rewritten.
func (r *GormConsignmentRepository) Update(ctx context.Context, aggregate *consignment.Consignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&ConsignmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":     dto.Status,
			"updated_at": dto.UpdatedAt,
			"version":    dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ConsignmentDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("consignmentId", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("consignment",
			fmt.Errorf("version %d is stale", dto.Version))
	}

	if len(dto.Timeline) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.Timeline).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a consignment by ID with its packages and timeline.
func (r *GormConsignmentRepository) Get(ctx context.Context, id kernel.UUID) (*consignment.Consignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ConsignmentDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("consignmentId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormConsignmentRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Packages", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
}
