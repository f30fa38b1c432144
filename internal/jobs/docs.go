// Package jobs provides scheduled background tasks for the shipping service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. RecentViewRefreshJob - Runs every minute to rebuild the cached admin
// recent-bookings view from the database.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(listRecentHandler, viewCache, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The refresh job only ever affects the cache; failures are logged and the
// next tick retries. Query handlers repopulate the cache on demand anyway,
// so a failing job degrades freshness, not correctness.
package jobs
