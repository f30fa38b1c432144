package queries

import (
	"errors"
	"time"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrListRecentConsignmentsQueryIsNotConstructed = errors.New(
		"ListRecentConsignmentsQuery must be created via NewListRecentConsignmentsQuery constructor",
	)
)

const (
	// DefaultRecentLimit is the page size of the admin dashboard. Only
	// responses at this limit are served from the view cache.
	DefaultRecentLimit = 20

	// MaxRecentLimit caps how many rows one request may pull.
	MaxRecentLimit = 100
)

// ListRecentConsignmentsQuery retrieves the most recently booked consignments
// for the admin dashboard, newest first.
type ListRecentConsignmentsQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewListRecentConsignmentsQuery creates a recent-bookings query.
// A limit of zero means DefaultRecentLimit; limits above MaxRecentLimit are
// rejected.
func NewListRecentConsignmentsQuery(limit int) (ListRecentConsignmentsQuery, error) {
	if limit < 0 || limit > MaxRecentLimit {
		return ListRecentConsignmentsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxRecentLimit)
	}
	if limit == 0 {
		limit = DefaultRecentLimit
	}

	return ListRecentConsignmentsQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListRecentConsignmentsQueryIsNotConstructed if validation fails.
func (q ListRecentConsignmentsQuery) Validate() error {
	return q.guard.Validate(ErrListRecentConsignmentsQueryIsNotConstructed)
}

// Limit returns the maximum number of rows to return.
func (q ListRecentConsignmentsQuery) Limit() int {
	return q.limit
}

// ListRecentConsignmentsQueryResponse is one row of the admin dashboard.
type ListRecentConsignmentsQueryResponse struct {
	ID          uuid.UUID `json:"id"`
	TrackingRef string    `json:"trackingRef"`
	CustomerID  string    `json:"customerId"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}
