package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/ports"
)

// UpdateConsignmentStatusCommandHandler appends one timeline entry to a
// consignment and moves it to the requested status. Concurrent updates to the
// same consignment are serialized by the aggregate's version: the loser fails
// with errs.VersionIsInvalidError and the operator retries.
type UpdateConsignmentStatusCommandHandler struct {
	uowFactory ConsignmentUoWFactory
	cache      ports.ViewCache
	logger     *slog.Logger
}

// NewUpdateConsignmentStatusCommandHandler creates a handler for status
// update operations.
func NewUpdateConsignmentStatusCommandHandler(
	uowFactory ConsignmentUoWFactory,
	cache ports.ViewCache,
	logger *slog.Logger,
) UpdateConsignmentStatusCommandHandler {
	return UpdateConsignmentStatusCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle loads the consignment, applies the status transition and persists
// the grown timeline. After commit it drops the cached tracking view so the
// customer sees the new status on the next poll.
func (h *UpdateConsignmentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateConsignmentStatusCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ConsignmentRepository()
	aggregate, err := repo.Get(ctx, cmd.ConsignmentID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateStatus(cmd.Status(), cmd.OccurredAt()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	keys := []string{
		ports.TrackingViewKey(aggregate.TrackingRef().String()),
		ports.RecentConsignmentsKey,
	}
	if err = h.cache.Invalidate(ctx, keys...); err != nil {
		h.logger.Warn("failed to invalidate consignment views",
			slog.String("trackingRef", aggregate.TrackingRef().String()),
			slog.String("error", err.Error()))
	}

	return nil
}
