package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// trackingViewTTL bounds staleness if an invalidation is lost; the command
// side drops the key on every status update.
const trackingViewTTL = 5 * time.Minute

// TrackConsignmentQueryHandler serves the public tracking page. It reads
// through the view cache: a hit skips the database entirely, a miss queries
// the read model and repopulates the cache.
type TrackConsignmentQueryHandler struct {
	db     *gorm.DB
	cache  ports.ViewCache
	logger *slog.Logger
}

// NewTrackConsignmentQueryHandler creates a handler for tracking queries.
func NewTrackConsignmentQueryHandler(
	db *gorm.DB,
	cache ports.ViewCache,
	logger *slog.Logger,
) TrackConsignmentQueryHandler {
	return TrackConsignmentQueryHandler{db: db, cache: cache, logger: logger}
}

// Handle returns the tracking view for the queried reference.
// Returns errs.ObjectNotFoundError when no consignment carries the reference.
func (h TrackConsignmentQueryHandler) Handle(
	ctx context.Context,
	query TrackConsignmentQuery,
) (TrackConsignmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackConsignmentQueryResponse{}, err
	}

	key := ports.TrackingViewKey(query.TrackingRef().String())
	if cached, err := h.cache.Get(ctx, key); err == nil {
		var resp TrackConsignmentQueryResponse
		if err = json.Unmarshal(cached, &resp); err == nil {
			return resp, nil
		}
		h.logger.Warn("discarding corrupt tracking view cache entry",
			slog.String("key", key), slog.String("error", err.Error()))
	} else if !errors.Is(err, ports.ErrCacheMiss) {
		h.logger.Warn("tracking view cache read failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}

	resp, err := h.load(ctx, query)
	if err != nil {
		return TrackConsignmentQueryResponse{}, err
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err = h.cache.Set(ctx, key, encoded, trackingViewTTL); err != nil {
			h.logger.Warn("tracking view cache write failed",
				slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	return resp, nil
}

func (h TrackConsignmentQueryHandler) load(
	ctx context.Context,
	query TrackConsignmentQuery,
) (TrackConsignmentQueryResponse, error) {
	ref := query.TrackingRef().String()

	var id uuid.UUID
	resp := TrackConsignmentQueryResponse{TrackingRef: ref}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			created_at
		FROM consignments
		WHERE tracking_ref = ?
	`, ref).Row()

	if err := row.Scan(&id, &resp.Status, &resp.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TrackConsignmentQueryResponse{}, errs.NewObjectNotFoundError("trackingRef", ref)
		}
		return TrackConsignmentQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			at
		FROM consignment_timeline_entries
		WHERE consignment_id = ?
		ORDER BY seq
	`, id).Rows()
	if err != nil {
		return TrackConsignmentQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var event TimelineEventResponse
		if err = rows.Scan(&event.Status, &event.At); err != nil {
			return TrackConsignmentQueryResponse{}, err
		}
		resp.Timeline = append(resp.Timeline, event)
	}
	if err = rows.Err(); err != nil {
		return TrackConsignmentQueryResponse{}, err
	}

	return resp, nil
}
