package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/clearbridge-loan-origination/internal/api/middleware"
	"github.com/clearbridge-loan-origination/internal/api/service"
)

// ReviewHandler handles HTTP requests for the underwriter review queue
type ReviewHandler struct {
	applicationService service.ApplicationService
	lifecycleService   service.LifecycleService
	logger             *slog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(logger *slog.Logger, applicationService service.ApplicationService, lifecycleService service.LifecycleService) *ReviewHandler {
	return &ReviewHandler{
		applicationService: applicationService,
		lifecycleService:   lifecycleService,
		logger:             logger,
	}
}

// List lists every application for review
func (h *ReviewHandler) List(c *gin.Context) {
	apps, err := h.applicationService.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list applications for review", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapApplicationsToResponse(apps))
}

// GetByID retrieves one application with its document state for review
func (h *ReviewHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	principal := middleware.GetPrincipal(c)
	view, err := h.applicationService.Get(c.Request.Context(), principal, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, ApplicationViewResponse{
		Application:  mapApplicationToResponse(view.Application),
		Documents:    mapRequirementViewsToResponse(view.Documents),
		Completeness: mapCompletenessToResponse(view.Completeness),
	})
}

// UpdateStatus applies an approve or reject verdict to an application
func (h *ReviewHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := service.DecisionInput{
		Comment:         req.Comment,
		ApprovedAmount:  req.ApprovedAmount,
		InterestRate:    req.InterestRate,
		TenureMonths:    req.TenureMonths,
		RejectionReason: req.RejectionReason,
	}
	switch req.Status {
	case "approved":
		input.Decision = service.DecisionApprove
	case "rejected":
		input.Decision = service.DecisionReject
	}

	principal := middleware.GetPrincipal(c)
	app, err := h.lifecycleService.Decide(c.Request.Context(), principal, id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapApplicationToResponse(app))
}

// RequestDocuments sends an application back to pending for more documents
func (h *ReviewHandler) RequestDocuments(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	var req RequestDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	principal := middleware.GetPrincipal(c)
	app, err := h.lifecycleService.RequestAdditionalDocuments(c.Request.Context(), principal, id, req.Comment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapApplicationToResponse(app))
}
