// Package http provides the inbound HTTP adapter: an echo server exposing the
// quoting, booking, tracking and admin endpoints, with request validation at
// the boundary and JWT auth on the admin surface.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/consignment"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createConsignmentHandler commands.CreateConsignmentCommandHandler
	updateStatusHandler      commands.UpdateConsignmentStatusCommandHandler

	// Query handlers
	quotePriceHandler queries.QuotePriceQueryHandler
	trackHandler      queries.TrackConsignmentQueryHandler
	listRecentHandler queries.ListRecentConsignmentsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createConsignmentHandler commands.CreateConsignmentCommandHandler,
	updateStatusHandler commands.UpdateConsignmentStatusCommandHandler,
	quotePriceHandler queries.QuotePriceQueryHandler,
	trackHandler queries.TrackConsignmentQueryHandler,
	listRecentHandler queries.ListRecentConsignmentsQueryHandler,
) *Server {
	return &Server{
		createConsignmentHandler: createConsignmentHandler,
		updateStatusHandler:      updateStatusHandler,
		quotePriceHandler:        quotePriceHandler,
		trackHandler:             trackHandler,
		listRecentHandler:        listRecentHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1. Admin-only routes go through
// the supplied middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, admin echo.MiddlewareFunc) {
	api := e.Group("/api/v1")
	api.POST("/quotes", s.QuotePrice)
	api.POST("/consignments", s.CreateConsignment)
	api.GET("/consignments/track/:ref", s.TrackConsignment)
	api.GET("/consignments/recent", s.ListRecentConsignments, admin)
	api.POST("/consignments/:id/status", s.UpdateConsignmentStatus, admin)
}

// QuotePrice handles POST /api/v1/quotes - prices a prospective booking.
func (s *Server) QuotePrice(ctx echo.Context) error {
	var req QuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return badRequest(ctx, "Invalid quote data: "+err.Error())
	}

	packages, err := toPackages(req.Packages)
	if err != nil {
		return badRequest(ctx, "Invalid package dimensions: "+err.Error())
	}
	accountType, tier, err := parseAccountAndTier(req.AccountType, req.Insurance)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewQuotePriceQuery(packages, accountType, tier, req.ParcelCount)
	if err != nil {
		return badRequest(ctx, "Invalid quote data: "+err.Error())
	}

	quote, err := s.quotePriceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to compute quote")
	}

	return ctx.JSON(http.StatusOK, quote)
}

// CreateConsignment handles POST /api/v1/consignments - books a shipment.
func (s *Server) CreateConsignment(ctx echo.Context) error {
	var req CreateConsignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return badRequest(ctx, "Invalid booking data: "+err.Error())
	}

	packages, err := toPackages(req.Packages)
	if err != nil {
		return badRequest(ctx, "Invalid package dimensions: "+err.Error())
	}
	accountType, tier, err := parseAccountAndTier(req.AccountType, req.Insurance)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	consignmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateConsignmentCommand(
		consignmentID, req.CustomerID, packages, accountType, tier, req.ParcelCount)
	if err != nil {
		return badRequest(ctx, "Invalid booking data: "+err.Error())
	}

	trackingRef, err := s.createConsignmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return internalError(ctx, "Failed to book consignment")
	}

	return ctx.JSON(http.StatusCreated, CreateConsignmentResponse{
		ID:          consignmentID.Bytes(),
		TrackingRef: trackingRef.String(),
	})
}

// TrackConsignment handles GET /api/v1/consignments/track/:ref - the public
// tracking page.
func (s *Server) TrackConsignment(ctx echo.Context) error {
	ref, err := kernel.TrackingRefFromString(ctx.Param("ref"))
	if err != nil {
		return badRequest(ctx, "Invalid tracking reference")
	}

	query, err := queries.NewTrackConsignmentQuery(ref)
	if err != nil {
		return badRequest(ctx, "Invalid tracking reference")
	}

	view, err := s.trackHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Consignment not found",
			})
		}
		return internalError(ctx, "Failed to retrieve tracking information")
	}

	return ctx.JSON(http.StatusOK, view)
}

// ListRecentConsignments handles GET /api/v1/consignments/recent - the admin
// dashboard listing. Accepts an optional ?limit= parameter.
func (s *Server) ListRecentConsignments(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid limit")
		}
		limit = parsed
	}

	query, err := queries.NewListRecentConsignmentsQuery(limit)
	if err != nil {
		return badRequest(ctx, "Invalid limit: "+err.Error())
	}

	consignments, err := s.listRecentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve consignments")
	}

	return ctx.JSON(http.StatusOK, consignments)
}

// UpdateConsignmentStatus handles POST /api/v1/consignments/:id/status -
// records a lifecycle event.
func (s *Server) UpdateConsignmentStatus(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid consignment id")
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	status, err := consignment.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+req.Status)
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	cmd, err := commands.NewUpdateConsignmentStatusCommand(id, status, occurredAt)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Consignment not found",
			})
		case errors.Is(err, errs.ErrVersionIsInvalid):
			return ctx.JSON(http.StatusConflict, ErrorResponse{
				Code:    http.StatusConflict,
				Message: "Consignment was updated concurrently, retry",
			})
		case errors.Is(err, consignment.ErrInvalidStatus):
			return badRequest(ctx, "Invalid status: "+req.Status)
		default:
			return internalError(ctx, "Failed to update consignment status")
		}
	}

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
