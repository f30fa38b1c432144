package queries

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"shipping/internal/core/ports"

	"gorm.io/gorm"
)

// recentViewTTL keeps the dashboard fresh even if both the command-side
// invalidation and the refresh job misbehave.
const recentViewTTL = 5 * time.Minute

// ListRecentConsignmentsQueryHandler serves the admin recent-bookings view.
// Requests at the default limit read through the view cache; other limits
// always hit the database.
type ListRecentConsignmentsQueryHandler struct {
	db     *gorm.DB
	cache  ports.ViewCache
	logger *slog.Logger
}

// NewListRecentConsignmentsQueryHandler creates a handler for recent-bookings
// queries.
func NewListRecentConsignmentsQueryHandler(
	db *gorm.DB,
	cache ports.ViewCache,
	logger *slog.Logger,
) ListRecentConsignmentsQueryHandler {
	return ListRecentConsignmentsQueryHandler{db: db, cache: cache, logger: logger}
}

// Handle returns the most recently booked consignments, newest first.
func (h ListRecentConsignmentsQueryHandler) Handle(
	ctx context.Context,
	query ListRecentConsignmentsQuery,
) ([]ListRecentConsignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cacheable := query.Limit() == DefaultRecentLimit
	if cacheable {
		if cached, err := h.cache.Get(ctx, ports.RecentConsignmentsKey); err == nil {
			var resp []ListRecentConsignmentsQueryResponse
			if err = json.Unmarshal(cached, &resp); err == nil {
				return resp, nil
			}
			h.logger.Warn("discarding corrupt recent consignments cache entry",
				slog.String("error", err.Error()))
		} else if !errors.Is(err, ports.ErrCacheMiss) {
			h.logger.Warn("recent consignments cache read failed",
				slog.String("error", err.Error()))
		}
	}

	resp, err := h.load(ctx, query.Limit())
	if err != nil {
		return nil, err
	}

	if cacheable {
		if encoded, err := json.Marshal(resp); err == nil {
			if err = h.cache.Set(ctx, ports.RecentConsignmentsKey, encoded, recentViewTTL); err != nil {
				h.logger.Warn("recent consignments cache write failed",
					slog.String("error", err.Error()))
			}
		}
	}

	return resp, nil
}

func (h ListRecentConsignmentsQueryHandler) load(
	ctx context.Context,
	limit int,
) ([]ListRecentConsignmentsQueryResponse, error) {
	consignments := make([]ListRecentConsignmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_ref,
			customer_id,
			status,
			total,
			created_at
		FROM consignments
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row ListRecentConsignmentsQueryResponse
		if err = rows.Scan(
			&row.ID,
			&row.TrackingRef,
			&row.CustomerID,
			&row.Status,
			&row.Total,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		consignments = append(consignments, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return consignments, nil
}
