package jobs

import (
	"fmt"
	"log/slog"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	recentViewRefreshJob *RecentViewRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	listRecentHandler queries.ListRecentConsignmentsQueryHandler,
	cache ports.ViewCache,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		recentViewRefreshJob: NewRecentViewRefreshJob(listRecentHandler, cache, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.recentViewRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start recent view refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.recentViewRefreshJob.Stop()
}
