package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clearbridge-loan-origination/internal/api/middleware"
	"github.com/clearbridge-loan-origination/internal/api/service"
)

// DocumentHandler handles HTTP requests for document upload and retrieval
type DocumentHandler struct {
	documentService service.DocumentService
	maxUploadBytes  int64
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(logger *slog.Logger, documentService service.DocumentService, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// Upload handles a multipart document upload for one application. The
// document type comes from the "type" form field and the contents from the
// "file" field.
func (h *DocumentHandler) Upload(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	docType := c.PostForm("type")
	if docType == "" {
		RespondBadRequest(c, "Document type is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.logger.Error("Missing or oversized upload file", "error", err)
		RespondBadRequest(c, "A file is required and must not exceed the upload limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", "error", err)
		RespondInternalError(c)
		return
	}
	defer file.Close()

	principal := middleware.GetPrincipal(c)
	rec, app, err := h.documentService.Upload(c.Request.Context(), principal, id, service.UploadDocumentInput{
		Type:        docType,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		FileSize:    fileHeader.Size,
		Contents:    file,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondCreated(c, UploadDocumentResponse{
		Document:    mapDocumentRecordToResponse(rec),
		Application: mapApplicationToResponse(app),
	})
}

// Download streams the stored contents of one uploaded document
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	docType := c.Param("type")
	principal := middleware.GetPrincipal(c)

	rec, contents, err := h.documentService.Download(c.Request.Context(), principal, id, docType)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	defer contents.Close()

	c.Header("Content-Disposition", `attachment; filename="`+rec.FileName+`"`)
	c.Header("Content-Type", rec.ContentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, contents); err != nil {
		h.logger.Error("Failed to stream document contents",
			"application_id", id.String(),
			"document_type", docType,
			"error", err)
	}
}
