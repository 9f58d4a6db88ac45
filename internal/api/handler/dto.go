package handler

import (
	"time"

	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/restoration"
)

// SubmitApplicationRequest represents a request to submit a new loan application
type SubmitApplicationRequest struct {
	LoanType     string `json:"loan_type" binding:"required"`
	Amount       int64  `json:"amount" binding:"required,gt=0"`
	Purpose      string `json:"purpose" binding:"required"`
	TenureMonths int    `json:"tenure_months" binding:"required,gt=0"`
}

// UpdateStatusRequest represents an underwriter's approve/reject verdict
type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=approved rejected"`
	Comment string `json:"comment,omitempty"`

	// Approval terms, required when status is approved
	ApprovedAmount int64   `json:"approved_amount,omitempty"`
	InterestRate   float64 `json:"interest_rate,omitempty"`
	TenureMonths   int     `json:"tenure_months,omitempty"`

	// Required when status is rejected
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// RequestDocumentsRequest represents a request for additional documents
type RequestDocumentsRequest struct {
	Comment string `json:"comment,omitempty"`
}

// CreateRestorationRequest represents a request to restore a deleted application
type CreateRestorationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReviewRestorationRequest carries the admin's notes on a restoration decision
type ReviewRestorationRequest struct {
	Notes string `json:"notes,omitempty"`
}

// PermanentDeleteRequest carries the confirmation literal for an
// irreversible purge
type PermanentDeleteRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

// HistoryEntryResponse represents one status history entry in API responses
type HistoryEntryResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Comment   string `json:"comment,omitempty"`
	UpdatedBy string `json:"updated_by,omitempty"`
}

// ApprovalDetailsResponse represents granted loan terms in API responses
type ApprovalDetailsResponse struct {
	ApprovedAmount int64   `json:"approved_amount"`
	InterestRate   float64 `json:"interest_rate"`
	TenureMonths   int     `json:"tenure_months"`
	EMI            int64   `json:"emi"`
}

// ApplicationResponse represents a loan application in API responses
type ApplicationResponse struct {
	ID                           string                   `json:"id"`
	ApplicantID                  string                   `json:"applicant_id"`
	LoanType                     string                   `json:"loan_type"`
	Amount                       int64                    `json:"amount"`
	Purpose                      string                   `json:"purpose"`
	TenureMonths                 int                      `json:"tenure_months"`
	Status                       string                   `json:"status"`
	DocumentsUploaded            bool                     `json:"documents_uploaded"`
	AdditionalDocumentsRequested bool                     `json:"additional_documents_requested"`
	StatusHistory                []HistoryEntryResponse   `json:"status_history"`
	RejectionReason              string                   `json:"rejection_reason,omitempty"`
	ApprovalDetails              *ApprovalDetailsResponse `json:"approval_details,omitempty"`
	IsDeleted                    bool                     `json:"is_deleted,omitempty"`
	DeletedAt                    string                   `json:"deleted_at,omitempty"`
	Version                      int                      `json:"version"`
	CreatedAt                    string                   `json:"created_at"`
	UpdatedAt                    string                   `json:"updated_at"`
}

// ApplicationListResponse represents a list of applications in API responses
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

// DocumentRequirementResponse joins a catalog entry with its upload state
type DocumentRequirementResponse struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
	Uploaded    bool   `json:"uploaded"`
	UploadedAt  string `json:"uploaded_at,omitempty"`
}

// CompletenessResponse summarizes the upload state of the required set
type CompletenessResponse struct {
	Uploaded   int      `json:"uploaded"`
	Total      int      `json:"total"`
	Percentage int      `json:"percentage"`
	Missing    []string `json:"missing"`
	Complete   bool     `json:"complete"`
}

// ApplicationViewResponse represents an application with its document state
type ApplicationViewResponse struct {
	Application  ApplicationResponse           `json:"application"`
	Documents    []DocumentRequirementResponse `json:"documents"`
	Completeness CompletenessResponse          `json:"document_completeness"`
}

// DocumentRecordResponse represents an uploaded document in API responses
type DocumentRecordResponse struct {
	ID            string `json:"id"`
	ApplicationID string `json:"application_id"`
	Type          string `json:"type"`
	FileName      string `json:"file_name"`
	FileSize      int64  `json:"file_size"`
	ContentType   string `json:"content_type"`
	UploadedAt    string `json:"uploaded_at"`
}

// UploadDocumentResponse pairs the stored record with the application state
// after the upload, which may have moved into review
type UploadDocumentResponse struct {
	Document    DocumentRecordResponse `json:"document"`
	Application ApplicationResponse    `json:"application"`
}

// RestorationRequestResponse represents a restoration request in API responses
type RestorationRequestResponse struct {
	ID            string `json:"id"`
	ApplicationID string `json:"application_id"`
	RequestedBy   string `json:"requested_by"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
	ReviewedBy    string `json:"reviewed_by,omitempty"`
	ReviewedAt    string `json:"reviewed_at,omitempty"`
	ReviewNotes   string `json:"review_notes,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// RestorationListResponse represents a list of restoration requests
type RestorationListResponse struct {
	Requests []RestorationRequestResponse `json:"requests"`
}

func mapApplicationToResponse(app *application.Application) ApplicationResponse {
	history := make([]HistoryEntryResponse, 0, len(app.StatusHistory))
	for _, entry := range app.StatusHistory {
		history = append(history, HistoryEntryResponse{
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp.Format(time.RFC3339),
			Comment:   entry.Comment,
			UpdatedBy: entry.UpdatedBy,
		})
	}

	resp := ApplicationResponse{
		ID:                           app.ID.String(),
		ApplicantID:                  app.ApplicantID.String(),
		LoanType:                     string(app.LoanType),
		Amount:                       app.Amount,
		Purpose:                      app.Purpose,
		TenureMonths:                 app.TenureMonths,
		Status:                       string(app.Status),
		DocumentsUploaded:            app.DocumentsUploaded,
		AdditionalDocumentsRequested: app.AdditionalDocumentsRequested,
		StatusHistory:                history,
		RejectionReason:              app.RejectionReason,
		IsDeleted:                    app.IsDeleted,
		Version:                      app.Version,
		CreatedAt:                    app.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                    app.UpdatedAt.Format(time.RFC3339),
	}
	if app.ApprovalDetails != nil {
		resp.ApprovalDetails = &ApprovalDetailsResponse{
			ApprovedAmount: app.ApprovalDetails.ApprovedAmount,
			InterestRate:   app.ApprovalDetails.InterestRate,
			TenureMonths:   app.ApprovalDetails.TenureMonths,
			EMI:            app.ApprovalDetails.EMI,
		}
	}
	if app.DeletedAt != nil {
		resp.DeletedAt = app.DeletedAt.Format(time.RFC3339)
	}
	return resp
}

func mapApplicationsToResponse(apps []*application.Application) ApplicationListResponse {
	out := ApplicationListResponse{Applications: make([]ApplicationResponse, 0, len(apps))}
	for _, app := range apps {
		out.Applications = append(out.Applications, mapApplicationToResponse(app))
	}
	return out
}

func mapRequirementViewsToResponse(views []document.RequirementView) []DocumentRequirementResponse {
	out := make([]DocumentRequirementResponse, 0, len(views))
	for _, view := range views {
		resp := DocumentRequirementResponse{
			Type:        string(view.Type),
			Name:        view.Name,
			Required:    view.Required,
			Description: view.Description,
			Uploaded:    view.Uploaded,
		}
		if view.UploadedAt != nil {
			resp.UploadedAt = view.UploadedAt.Format(time.RFC3339)
		}
		out = append(out, resp)
	}
	return out
}

func mapCompletenessToResponse(c document.Completeness) CompletenessResponse {
	missing := make([]string, 0, len(c.Missing))
	for _, t := range c.Missing {
		missing = append(missing, string(t))
	}
	return CompletenessResponse{
		Uploaded:   c.Uploaded,
		Total:      c.Total,
		Percentage: c.Percentage,
		Missing:    missing,
		Complete:   c.Complete(),
	}
}

func mapDocumentRecordToResponse(rec *document.Record) DocumentRecordResponse {
	return DocumentRecordResponse{
		ID:            rec.ID.String(),
		ApplicationID: rec.ApplicationID.String(),
		Type:          string(rec.Type),
		FileName:      rec.FileName,
		FileSize:      rec.FileSize,
		ContentType:   rec.ContentType,
		UploadedAt:    rec.UploadedAt.Format(time.RFC3339),
	}
}

func mapRestorationToResponse(req *restoration.Request) RestorationRequestResponse {
	resp := RestorationRequestResponse{
		ID:            req.ID.String(),
		ApplicationID: req.ApplicationID.String(),
		RequestedBy:   req.RequestedBy.String(),
		Reason:        req.Reason,
		Status:        string(req.Status),
		ReviewNotes:   req.ReviewNotes,
		CreatedAt:     req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     req.UpdatedAt.Format(time.RFC3339),
	}
	if req.ReviewedBy != nil {
		resp.ReviewedBy = req.ReviewedBy.String()
	}
	if req.ReviewedAt != nil {
		resp.ReviewedAt = req.ReviewedAt.Format(time.RFC3339)
	}
	return resp
}

func mapRestorationsToResponse(reqs []*restoration.Request) RestorationListResponse {
	out := RestorationListResponse{Requests: make([]RestorationRequestResponse, 0, len(reqs))}
	for _, req := range reqs {
		out.Requests = append(out.Requests, mapRestorationToResponse(req))
	}
	return out
}
