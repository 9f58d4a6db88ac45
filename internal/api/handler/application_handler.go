package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clearbridge-loan-origination/internal/api/middleware"
	"github.com/clearbridge-loan-origination/internal/api/service"
)

// ApplicationHandler handles HTTP requests for applicant-facing
// application operations
type ApplicationHandler struct {
	applicationService service.ApplicationService
	logger             *slog.Logger
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(logger *slog.Logger, applicationService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		logger:             logger,
	}
}

// Submit handles submission of a new loan application
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	principal := middleware.GetPrincipal(c)
	app, err := h.applicationService.Submit(c.Request.Context(), principal, service.SubmitApplicationInput{
		LoanType:     req.LoanType,
		Amount:       req.Amount,
		Purpose:      req.Purpose,
		TenureMonths: req.TenureMonths,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondCreated(c, mapApplicationToResponse(app))
}

// ListOwn lists the caller's applications
func (h *ApplicationHandler) ListOwn(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	apps, err := h.applicationService.ListOwn(c.Request.Context(), principal)
	if err != nil {
		h.logger.Error("Failed to list applications", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapApplicationsToResponse(apps))
}

// GetByID retrieves an application with its document state
func (h *ApplicationHandler) GetByID(c *gin.Context) {
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

// Delete soft-deletes the caller's application
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	principal := middleware.GetPrincipal(c)
	if err := h.applicationService.SoftDelete(c.Request.Context(), principal, id); err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondNoContent(c)
}

// parseIDParam parses the :id path parameter, responding with 400 on garbage
func parseIDParam(c *gin.Context, logger *slog.Logger) (uuid.UUID, bool) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Error("Invalid application ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid application ID")
		return uuid.Nil, false
	}
	return id, true
}
