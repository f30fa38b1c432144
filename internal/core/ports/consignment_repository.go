package ports

import (
	"context"

	"shipping/internal/core/domain/model/consignment"
	"shipping/internal/core/domain/model/kernel"
)

// ConsignmentRepository defines the persistence contract for consignment
// aggregates on the command side. Read models (tracking page, admin listing)
// query the database directly and do not go through this interface.
type ConsignmentRepository interface {
	// Add persists a freshly booked consignment.
	// The consignment must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *consignment.Consignment) error

	// Update persists changes to an existing consignment. The stored version
	// must match the aggregate's version; a mismatch means a concurrent
	// update won and results in errs.VersionIsInvalidError.
	Update(ctx context.Context, aggregate *consignment.Consignment) error

	// Get retrieves a consignment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*consignment.Consignment, error)
}
