package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrTrackConsignmentQueryIsNotConstructed = errors.New(
		"TrackConsignmentQuery must be created via NewTrackConsignmentQuery constructor",
	)
)

// TrackConsignmentQuery retrieves the public tracking view of one consignment
// by its tracking reference. This is the query behind the unauthenticated
// tracking page, so the response deliberately omits the customer and price.
type TrackConsignmentQuery struct {
	trackingRef kernel.TrackingRef

	guard guard.ConstructorGuard
}

// NewTrackConsignmentQuery creates a tracking query for the given reference.
func NewTrackConsignmentQuery(trackingRef kernel.TrackingRef) (TrackConsignmentQuery, error) {
	if err := trackingRef.Validate(); err != nil {
		return TrackConsignmentQuery{}, err
	}

	return TrackConsignmentQuery{
		trackingRef: trackingRef,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrTrackConsignmentQueryIsNotConstructed if validation fails.
func (q TrackConsignmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackConsignmentQueryIsNotConstructed)
}

// TrackingRef returns the tracking reference to look up.
func (q TrackConsignmentQuery) TrackingRef() kernel.TrackingRef {
	return q.trackingRef
}

// TrackConsignmentQueryResponse is the public tracking view: the current
// status plus the full transition history, oldest first.
type TrackConsignmentQueryResponse struct {
	TrackingRef string                  `json:"trackingRef"`
	Status      string                  `json:"status"`
	Timeline    []TimelineEventResponse `json:"timeline"`
	CreatedAt   time.Time               `json:"createdAt"`
}

// TimelineEventResponse is one recorded lifecycle event.
type TimelineEventResponse struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}
