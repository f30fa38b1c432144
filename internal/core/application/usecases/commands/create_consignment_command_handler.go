package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/consignment"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// CreateConsignmentCommandHandler handles the business logic for booking a
// shipment: it prices the packages with the current configuration, assigns a
// fresh tracking reference and persists the consignment in CREATED status.
type CreateConsignmentCommandHandler struct {
	uowFactory ConsignmentUoWFactory
	configs    ports.PricingConfigSource
	cache      ports.ViewCache
	logger     *slog.Logger
}

// NewCreateConsignmentCommandHandler creates a handler for booking operations.
func NewCreateConsignmentCommandHandler(
	uowFactory ConsignmentUoWFactory,
	configs ports.PricingConfigSource,
	cache ports.ViewCache,
	logger *slog.Logger,
) CreateConsignmentCommandHandler {
	return CreateConsignmentCommandHandler{
		uowFactory: uowFactory,
		configs:    configs,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the booking command and returns the tracking reference the
// customer uses to follow the shipment. The price stored on the consignment
// is computed server-side at booking time.
func (h *CreateConsignmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateConsignmentCommand,
) (kernel.TrackingRef, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.TrackingRef{}, err
	}

	cfg, err := h.configs.ConfigFor(cmd.AccountType())
	if err != nil {
		return kernel.TrackingRef{}, err
	}

	price := services.CalcPrice(cmd.Packages(), cfg, cmd.Insurance(), cmd.ParcelCount())
	trackingRef := kernel.NewRandomTrackingRef()

	aggregate, err := consignment.NewConsignment(
		cmd.ConsignmentID(),
		trackingRef,
		cmd.CustomerID(),
		cmd.Packages(),
		cmd.Insurance(),
		price,
		time.Now().UTC(),
	)
	if err != nil {
		return kernel.TrackingRef{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.TrackingRef{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ConsignmentRepository().Add(ctx, aggregate); err != nil {
		return kernel.TrackingRef{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.TrackingRef{}, err
	}

	// The admin recent-bookings view is stale now. Invalidation failures only
	// delay the view until its TTL expires, so they do not fail the booking.
	if err = h.cache.Invalidate(ctx, ports.RecentConsignmentsKey); err != nil {
		h.logger.Warn("failed to invalidate recent consignments view",
			slog.String("error", err.Error()))
	}

	return trackingRef, nil
}
