package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/consignmentrepo"
	"shipping/internal/core/domain/model/consignment"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&consignmentrepo.ConsignmentDTO{},
		&consignmentrepo.PackageDTO{},
		&consignmentrepo.TimelineEntryDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE consignments, consignment_packages, consignment_timeline_entries").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.ConsignmentRepository(), "First instance should provide consignment repository")
	suite.NotNil(uow2.ConsignmentRepository(), "Second instance should provide consignment repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_CommittedChangesPersist verifies repository operations within
// a transaction boundary become visible to other unit of work instances after
// commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommittedChangesPersist() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testConsignment := suite.createTestConsignment()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.ConsignmentRepository().Add(ctx, testConsignment)
	suite.Require().NoError(err)

	// Visible within the transaction before commit
	retrieved, err := uow.ConsignmentRepository().Get(ctx, testConsignment.ID())
	suite.Require().NoError(err)
	suite.True(testConsignment.ID().IsEqual(retrieved.ID()))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err = newUow.ConsignmentRepository().Get(ctx, testConsignment.ID())
	suite.Require().NoError(err)
	suite.True(testConsignment.ID().IsEqual(retrieved.ID()))
	suite.Equal(consignment.Created, retrieved.Status())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testConsignment := suite.createTestConsignment()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.ConsignmentRepository().Add(ctx, testConsignment)
	suite.Require().NoError(err)

	_, err = uow.ConsignmentRepository().Get(ctx, testConsignment.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.ConsignmentRepository().Get(ctx, testConsignment.ID())
	suite.Require().Error(err, "Consignment should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	consignment1 := suite.createTestConsignment()
	consignment2 := suite.createTestConsignment()

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.ConsignmentRepository().Add(ctx, consignment1)
	suite.Require().NoError(err)

	err = uow2.ConsignmentRepository().Add(ctx, consignment2)
	suite.Require().NoError(err)

	// Each transaction should only see its own changes
	_, err = uow1.ConsignmentRepository().Get(ctx, consignment1.ID())
	suite.Require().NoError(err, "UOW1 should see consignment1")

	_, err = uow1.ConsignmentRepository().Get(ctx, consignment2.ID())
	suite.Require().Error(err, "UOW1 should not see consignment2")

	_, err = uow2.ConsignmentRepository().Get(ctx, consignment2.ID())
	suite.Require().NoError(err, "UOW2 should see consignment2")

	_, err = uow2.ConsignmentRepository().Get(ctx, consignment1.ID())
	suite.Require().Error(err, "UOW2 should not see consignment1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.ConsignmentRepository().Get(ctx, consignment1.ID())
	suite.Require().NoError(err, "Consignment1 should persist after commit")

	_, err = newUow.ConsignmentRepository().Get(ctx, consignment2.ID())
	suite.Require().Error(err, "Consignment2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testConsignment := suite.createTestConsignment()

	// Add consignment without beginning transaction (should auto-commit)
	err := uow.ConsignmentRepository().Add(ctx, testConsignment)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.ConsignmentRepository().Get(ctx, testConsignment.ID())
	suite.Require().NoError(err)
	suite.True(testConsignment.ID().IsEqual(retrieved.ID()))
}

// TestUnitOfWork_StatusUpdateWorkflow tests the complete status update
// workflow within a single transaction: load, transition, persist.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StatusUpdateWorkflow() {
	ctx := context.Background()

	testConsignment := suite.createTestConsignment()
	initialUow := suite.factory.Create()
	err := initialUow.ConsignmentRepository().Add(ctx, testConsignment)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	repo := uow.ConsignmentRepository()
	loaded, err := repo.Get(ctx, testConsignment.ID())
	suite.Require().NoError(err)

	err = loaded.UpdateStatus(consignment.PickedUp, time.Now().UTC())
	suite.Require().NoError(err)

	err = repo.Update(ctx, loaded)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.ConsignmentRepository().Get(ctx, testConsignment.ID())
	suite.Require().NoError(err)
	suite.Equal(consignment.PickedUp, retrieved.Status())
	suite.Len(retrieved.Timeline().Entries(), 2)
	suite.Equal(2, retrieved.Version())
}

// createTestConsignment creates a valid consignment for testing purposes.
func (suite *UnitOfWorkIntegrationTestSuite) createTestConsignment() *consignment.Consignment {
	pkg, err := kernel.NewPackageDimensions(40, 30, 20, 5)
	suite.Require().NoError(err)

	price := services.PriceBreakdown{
		ChargeableWeightKg: 5,
		BaseFee:            12.5,
		WeightFee:          16,
		InsuranceFee:       8,
		SubTotal:           28.5,
		Total:              36.5,
	}

	c, err := consignment.NewConsignment(
		kernel.NewUUID(),
		kernel.NewRandomTrackingRef(),
		"uid-12345",
		[]kernel.PackageDimensions{pkg},
		services.InsuranceStandard,
		price,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return c
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
