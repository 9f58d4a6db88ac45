package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/domain/restoration"
)

// SubmitApplicationInput carries the fields of a new loan application
type SubmitApplicationInput struct {
	LoanType     string
	Amount       int64 // Minor currency units
	Purpose      string
	TenureMonths int
}

// ApplicationView joins an application with its document upload state
type ApplicationView struct {
	Application  *application.Application   `json:"application"`
	Documents    []document.RequirementView `json:"documents"`
	Completeness document.Completeness      `json:"document_completeness"`
}

// ApplicationService defines applicant-facing application operations
type ApplicationService interface {
	// Submit validates and stores a new application in the pending state
	Submit(ctx context.Context, principal *identity.Principal, input SubmitApplicationInput) (*application.Application, error)

	// Get retrieves an application with its document state. Applicants can
	// only see their own applications; other owners' applications surface
	// as NotFoundError.
	Get(ctx context.Context, principal *identity.Principal, id uuid.UUID) (*ApplicationView, error)

	// ListOwn lists the caller's applications, newest first
	ListOwn(ctx context.Context, principal *identity.Principal) ([]*application.Application, error)

	// ListAll lists every non-deleted application for reviewers
	ListAll(ctx context.Context) ([]*application.Application, error)

	// ListDeleted lists soft-deleted applications for admins
	ListDeleted(ctx context.Context) ([]*application.Application, error)

	// SoftDelete hides the caller's application. Approved applications are
	// refused with PreconditionError.
	SoftDelete(ctx context.Context, principal *identity.Principal, id uuid.UUID) error
}

// Decision identifies the underwriter's verdict on an application
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// DecisionInput carries an underwriter's approve/reject verdict
type DecisionInput struct {
	Decision Decision
	Comment  string

	// Approval terms, required when Decision is DecisionApprove
	ApprovedAmount int64   // Minor currency units
	InterestRate   float64 // Annual percentage
	TenureMonths   int

	// Required when Decision is DecisionReject
	RejectionReason string
}

// LifecycleService defines the underwriter review operations
type LifecycleService interface {
	// Decide applies an approve or reject verdict to an application under
	// review. Decisions are gated on required-document completeness.
	Decide(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, input DecisionInput) (*application.Application, error)

	// RequestAdditionalDocuments sends an application back to pending so the
	// applicant can complete the document set.
	RequestAdditionalDocuments(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, comment string) (*application.Application, error)
}

// UploadDocumentInput carries one document upload
type UploadDocumentInput struct {
	Type        string
	FileName    string
	ContentType string
	FileSize    int64
	Contents    io.Reader
}

// DocumentService defines document upload and retrieval operations
type DocumentService interface {
	// Upload stores a document for a pending application, replacing any
	// previous upload of the same type. When the upload completes the
	// required set, the application moves into review automatically.
	Upload(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, input UploadDocumentInput) (*document.Record, *application.Application, error)

	// Download opens the stored contents of one uploaded document
	Download(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, docType string) (*document.Record, io.ReadCloser, error)
}

// PermanentDeleteConfirmation is the literal a caller must supply before an
// application is irreversibly purged
const PermanentDeleteConfirmation = "DELETE"

// RestorationService defines the soft-delete recovery workflow
type RestorationService interface {
	// Request opens a restoration request for a soft-deleted application.
	// At most one pending request per application is allowed.
	Request(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, reason string) (*restoration.Request, error)

	// List lists restoration requests, optionally filtered by status
	// ("" means all), newest first.
	List(ctx context.Context, status string) ([]*restoration.Request, error)

	// ListMine lists the requests opened by the calling principal,
	// newest first.
	ListMine(ctx context.Context, principal *identity.Principal) ([]*restoration.Request, error)

	// Approve grants a pending request and restores the application
	Approve(ctx context.Context, principal *identity.Principal, requestID uuid.UUID, notes string) (*restoration.Request, error)

	// Reject denies a pending request with mandatory notes
	Reject(ctx context.Context, principal *identity.Principal, requestID uuid.UUID, notes string) (*restoration.Request, error)

	// PermanentlyDelete purges a soft-deleted application along with its
	// documents, stored files and restoration requests. Requires the
	// confirmation literal "DELETE".
	PermanentlyDelete(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, confirmation string) error
}
