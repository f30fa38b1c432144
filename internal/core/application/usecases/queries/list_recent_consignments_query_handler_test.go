package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/consignmentrepo"
	"shipping/internal/adapters/out/rediscache"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/consignment"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListRecentConsignmentsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	redis     *miniredis.Miniredis
	cache     ports.ViewCache
	handler   queries.ListRecentConsignmentsQueryHandler
	repo      *consignmentrepo.GormConsignmentRepository
}

func (suite *ListRecentConsignmentsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&consignmentrepo.ConsignmentDTO{},
		&consignmentrepo.PackageDTO{},
		&consignmentrepo.TimelineEntryDTO{},
	))

	suite.repo = consignmentrepo.NewGormConsignmentRepository(db, noopTracker{})
}

func (suite *ListRecentConsignmentsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ListRecentConsignmentsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE consignments CASCADE").Error)

	suite.redis = miniredis.RunT(suite.T())
	client := redis.NewClient(&redis.Options{Addr: suite.redis.Addr()})
	suite.cache = rediscache.NewRedisViewCache(client)
	suite.handler = queries.NewListRecentConsignmentsQueryHandler(suite.db, suite.cache, discardLogger())
}

func (suite *ListRecentConsignmentsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewListRecentConsignmentsQuery(0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListRecentConsignmentsQueryHandlerTestSuite) TestHandle_ReturnsNewestFirst() {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	oldest := suite.seedConsignmentAt(base)
	newest := suite.seedConsignmentAt(base.Add(time.Hour))

	query, err := queries.NewListRecentConsignmentsQuery(0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal(newest.TrackingRef().String(), result[0].TrackingRef)
	suite.Equal(oldest.TrackingRef().String(), result[1].TrackingRef)
	suite.Equal("uid-12345", result[0].CustomerID)
	suite.Equal("CREATED", result[0].Status)
	suite.InDelta(28.5, result[0].Total, 1e-9)
}

func (suite *ListRecentConsignmentsQueryHandlerTestSuite) TestHandle_RespectsLimit() {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := range 5 {
		suite.seedConsignmentAt(base.Add(time.Duration(i) * time.Minute))
	}

	query, err := queries.NewListRecentConsignmentsQuery(3)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(result, 3)
}

func (suite *ListRecentConsignmentsQueryHandlerTestSuite) TestHandle_DefaultLimitServedFromCache() {
	ctx := context.Background()
	suite.seedConsignmentAt(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	query, err := queries.NewListRecentConsignmentsQuery(0)
	suite.Require().NoError(err)

	first, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(first, 1)

	// Dropping the rows proves the next read never reaches the database.
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE consignments CASCADE").Error)

	second, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(second, 1)
}

func (suite *ListRecentConsignmentsQueryHandlerTestSuite) TestHandle_NonDefaultLimitBypassesCache() {
	ctx := context.Background()
	suite.seedConsignmentAt(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	query, err := queries.NewListRecentConsignmentsQuery(50)
	suite.Require().NoError(err)

	first, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(first, 1)

	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE consignments CASCADE").Error)

	second, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(second)
}

func (suite *ListRecentConsignmentsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.ListRecentConsignmentsQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Require().ErrorIs(err, queries.ErrListRecentConsignmentsQueryIsNotConstructed)
}

func TestNewListRecentConsignmentsQuery_LimitBounds(t *testing.T) {
	if _, err := queries.NewListRecentConsignmentsQuery(queries.MaxRecentLimit + 1); err == nil {
		t.Fatal("expected limit above MaxRecentLimit to be rejected")
	}
	if _, err := queries.NewListRecentConsignmentsQuery(-1); err == nil {
		t.Fatal("expected negative limit to be rejected")
	}

	query, err := queries.NewListRecentConsignmentsQuery(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query.Limit() != queries.DefaultRecentLimit {
		t.Fatalf("zero limit should default to %d, got %d", queries.DefaultRecentLimit, query.Limit())
	}
}

func (suite *ListRecentConsignmentsQueryHandlerTestSuite) seedConsignmentAt(
	createdAt time.Time,
) *consignment.Consignment {
	pkg, err := kernel.NewPackageDimensions(40, 30, 20, 5)
	suite.Require().NoError(err)

	c, err := consignment.NewConsignment(
		kernel.NewUUID(),
		kernel.NewRandomTrackingRef(),
		"uid-12345",
		[]kernel.PackageDimensions{pkg},
		services.InsuranceNone,
		services.PriceBreakdown{SubTotal: 28.5, Total: 28.5},
		createdAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), c))
	return c
}

func TestListRecentConsignmentsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListRecentConsignmentsQueryHandlerTestSuite))
}
