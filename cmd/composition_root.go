package cmd

import (
	"log/slog"

	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cache      ports.ViewCache
	configs    ports.PricingConfigSource
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	cache ports.ViewCache,
	configs ports.PricingConfigSource,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      cache,
		configs:    configs,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateConsignmentCommandHandler() commands.CreateConsignmentCommandHandler {
	var f commands.ConsignmentUoWFactory = FuncConsignmentUoWFactory(func() commands.ConsignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateConsignmentCommandHandler(f, c.configs, c.cache, c.logger)
}

func (c *CompositionRoot) CreateUpdateConsignmentStatusCommandHandler() commands.UpdateConsignmentStatusCommandHandler {
	var f commands.ConsignmentUoWFactory = FuncConsignmentUoWFactory(func() commands.ConsignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateConsignmentStatusCommandHandler(f, c.cache, c.logger)
}

func (c *CompositionRoot) CreateQuotePriceQueryHandler() queries.QuotePriceQueryHandler {
	return queries.NewQuotePriceQueryHandler(c.configs)
}

func (c *CompositionRoot) CreateTrackConsignmentQueryHandler() queries.TrackConsignmentQueryHandler {
	return queries.NewTrackConsignmentQueryHandler(c.gormDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateListRecentConsignmentsQueryHandler() queries.ListRecentConsignmentsQueryHandler {
	return queries.NewListRecentConsignmentsQueryHandler(c.gormDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateListRecentConsignmentsQueryHandler(), c.cache, c.logger)
}

type FuncConsignmentUoWFactory func() commands.ConsignmentUoW

func (f FuncConsignmentUoWFactory) Create() commands.ConsignmentUoW {
	return f()
}
