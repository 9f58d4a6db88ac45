package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/clearbridge-loan-origination/internal/api/middleware"
	"github.com/clearbridge-loan-origination/internal/api/service"
)

// RestorationHandler handles HTTP requests for the soft-delete
// recovery workflow
type RestorationHandler struct {
	restorationService service.RestorationService
	applicationService service.ApplicationService
	logger             *slog.Logger
}

// NewRestorationHandler creates a new restoration handler
func NewRestorationHandler(logger *slog.Logger, restorationService service.RestorationService, applicationService service.ApplicationService) *RestorationHandler {
	return &RestorationHandler{
		restorationService: restorationService,
		applicationService: applicationService,
		logger:             logger,
	}
}

// Create opens a restoration request for a soft-deleted application
func (h *RestorationHandler) Create(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	var req CreateRestorationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	principal := middleware.GetPrincipal(c)
	request, err := h.restorationService.Request(c.Request.Context(), principal, id, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondCreated(c, mapRestorationToResponse(request))
}

// List lists restoration requests, optionally filtered by ?status=
func (h *RestorationHandler) List(c *gin.Context) {
	requests, err := h.restorationService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapRestorationsToResponse(requests))
}

// ListMine lists the restoration requests opened by the caller
func (h *RestorationHandler) ListMine(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	requests, err := h.restorationService.ListMine(c.Request.Context(), principal)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapRestorationsToResponse(requests))
}

// ListDeletedApplications lists soft-deleted applications for reviewers
func (h *RestorationHandler) ListDeletedApplications(c *gin.Context) {
	apps, err := h.applicationService.ListDeleted(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list deleted applications", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapApplicationsToResponse(apps))
}

// Approve grants a pending restoration request and restores the application
func (h *RestorationHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	var req ReviewRestorationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	principal := middleware.GetPrincipal(c)
	request, err := h.restorationService.Approve(c.Request.Context(), principal, id, req.Notes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapRestorationToResponse(request))
}

// Reject denies a pending restoration request
func (h *RestorationHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	var req ReviewRestorationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	principal := middleware.GetPrincipal(c)
	request, err := h.restorationService.Reject(c.Request.Context(), principal, id, req.Notes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapRestorationToResponse(request))
}

// PermanentDelete irreversibly purges a soft-deleted application
func (h *RestorationHandler) PermanentDelete(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	var req PermanentDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	principal := middleware.GetPrincipal(c)
	if err := h.restorationService.PermanentlyDelete(c.Request.Context(), principal, id, req.Confirmation); err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondNoContent(c)
}
