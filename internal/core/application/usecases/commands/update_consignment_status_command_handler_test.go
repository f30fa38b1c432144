package commands_test

import (
	"errors"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/consignment"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedConsignment(t *testing.T) *consignment.Consignment {
	t.Helper()
	c, err := consignment.NewConsignment(
		kernel.NewUUID(),
		kernel.NewRandomTrackingRef(),
		"uid-123",
		testPackages(t),
		services.InsuranceNone,
		services.PriceBreakdown{Total: 16},
		time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return c
}

func TestUpdateConsignmentStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored := storedConsignment(t)
	at := stored.CreatedAt().Add(time.Hour)
	cmd, err := commands.NewUpdateConsignmentStatusCommand(stored.ID(), consignment.PickedUp, at)
	require.NoError(t, err)

	repo := new(MockConsignmentRepository)
	uow := new(MockConsignmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConsignmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConsignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	wantKeys := []string{
		ports.TrackingViewKey(stored.TrackingRef().String()),
		ports.RecentConsignmentsKey,
	}
	cache := new(MockViewCache)
	cache.On("Invalidate", ctx, wantKeys).Return(nil).Once()

	h := commands.NewUpdateConsignmentStatusCommandHandler(factory, cache, testLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, consignment.PickedUp, stored.Status())
	assert.Equal(t, 2, stored.Timeline().Len())
	assert.Equal(t, at, stored.Timeline().Last().At())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestUpdateConsignmentStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateConsignmentStatusCommand{} // not constructed properly
	factory := new(MockConsignmentUoWFactory)

	h := commands.NewUpdateConsignmentStatusCommandHandler(factory, new(MockViewCache), testLogger())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdateConsignmentStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewUpdateConsignmentStatusCommand(id, consignment.Delivered, time.Now().UTC())
	require.NoError(t, err)

	notFound := errs.NewObjectNotFoundError("consignmentId", id)
	repo := new(MockConsignmentRepository)
	uow := new(MockConsignmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConsignmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(nil, notFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConsignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockViewCache)
	h := commands.NewUpdateConsignmentStatusCommandHandler(factory, cache, testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	cache.AssertNotCalled(t, "Invalidate")
}

func TestUpdateConsignmentStatusCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	stored := storedConsignment(t)
	cmd, err := commands.NewUpdateConsignmentStatusCommand(
		stored.ID(), consignment.InTransit, stored.CreatedAt().Add(time.Hour))
	require.NoError(t, err)

	conflict := errs.NewVersionIsInvalidError("consignment", errors.New("stale version"))
	repo := new(MockConsignmentRepository)
	uow := new(MockConsignmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConsignmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConsignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockViewCache)
	h := commands.NewUpdateConsignmentStatusCommandHandler(factory, cache, testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	cache.AssertNotCalled(t, "Invalidate")
}
