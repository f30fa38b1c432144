package jobs

import (
	"context"
	"log/slog"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// RecentViewRefreshJob keeps the cached admin recent-bookings view warm.
// Every minute it drops the cached entry and replays the query, which
// repopulates the cache from the database.
type RecentViewRefreshJob struct {
	handler queries.ListRecentConsignmentsQueryHandler
	cache   ports.ViewCache
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRecentViewRefreshJob creates the refresh job.
func NewRecentViewRefreshJob(
	handler queries.ListRecentConsignmentsQueryHandler,
	cache ports.ViewCache,
	logger *slog.Logger,
) *RecentViewRefreshJob {
	return &RecentViewRefreshJob{
		handler: handler,
		cache:   cache,
		cron:    cron.New(),
		logger:  logger.With("component", "recent_view_refresh_job"),
	}
}

// Start begins the refresh job to run every minute.
func (j *RecentViewRefreshJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		if err := j.cache.Invalidate(ctx, ports.RecentConsignmentsKey); err != nil {
			j.logger.ErrorContext(ctx, "Recent view refresh failed to invalidate", "error", err)
			return
		}

		query, err := queries.NewListRecentConsignmentsQuery(0)
		if err != nil {
			j.logger.ErrorContext(ctx, "Recent view refresh failed to build query", "error", err)
			return
		}

		if _, err = j.handler.Handle(ctx, query); err != nil {
			j.logger.ErrorContext(ctx, "Recent view refresh failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Recent view refresh job started (running every minute)")
	return nil
}

// Stop stops the refresh job.
func (j *RecentViewRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Recent view refresh job stopped")
}
