package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
	"github.com/clearbridge-loan-origination/internal/platform/messaging/producers"
)

// DocumentServiceImpl implements the DocumentService interface
type DocumentServiceImpl struct {
	appRepo  application.Repository
	docRepo  document.Repository
	files    document.FileStore
	catalog  document.Catalog
	producer producers.MessagePublisher
	logger   *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	logger *slog.Logger,
	appRepo application.Repository,
	docRepo document.Repository,
	files document.FileStore,
	catalog document.Catalog,
	producer producers.MessagePublisher,
) DocumentService {
	return &DocumentServiceImpl{
		appRepo:  appRepo,
		docRepo:  docRepo,
		files:    files,
		catalog:  catalog,
		producer: producer,
		logger:   logger,
	}
}

// Upload stores a document for a pending application, replacing any previous
// upload of the same type. When the upload completes the required set, the
// application moves into review automatically.
func (s *DocumentServiceImpl) Upload(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, input UploadDocumentInput) (*document.Record, *application.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	if app.ApplicantID != principal.UserID {
		return nil, nil, shared.NotFoundError{Resource: "loan application", ID: applicationID.String()}
	}
	if app.Status != application.StatusPending {
		return nil, nil, shared.PreconditionError{Precondition: "documents can only be uploaded while the application is pending"}
	}

	docType := document.Type(strings.TrimSpace(input.Type))
	if _, ok := s.catalog.Lookup(docType); !ok {
		return nil, nil, shared.ValidationError{Field: "document_type", Reason: "unknown document type " + string(docType)}
	}
	if strings.TrimSpace(input.FileName) == "" {
		return nil, nil, shared.ValidationError{Field: "file", Reason: "a file is required"}
	}

	storageID, err := s.files.Save(ctx, input.FileName, input.Contents)
	if err != nil {
		return nil, nil, err
	}

	rec := &document.Record{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		ApplicantID:   principal.UserID,
		Type:          docType,
		FileName:      input.FileName,
		FileSize:      input.FileSize,
		ContentType:   input.ContentType,
		StorageID:     storageID,
		UploadedAt:    time.Now(),
	}

	replaced, err := s.docRepo.Upsert(ctx, rec)
	if err != nil {
		if delErr := s.files.Delete(ctx, storageID); delErr != nil {
			s.logger.Error("Failed to clean up stored file after failed upsert",
				"storage_id", storageID, "error", delErr)
		}
		return nil, nil, err
	}
	if replaced != nil {
		if err := s.files.Delete(ctx, replaced.StorageID); err != nil {
			s.logger.Error("Failed to delete replaced document file",
				"storage_id", replaced.StorageID, "error", err)
		}
	}

	s.logger.Info("Document uploaded",
		"application_id", applicationID.String(),
		"document_type", string(docType),
		"file_size", input.FileSize,
	)

	app, err = s.advanceIfComplete(ctx, app)
	if err != nil {
		return nil, nil, err
	}

	return rec, app, nil
}

// advanceIfComplete moves the application into review once every required
// document is present
func (s *DocumentServiceImpl) advanceIfComplete(ctx context.Context, app *application.Application) (*application.Application, error) {
	records, err := s.docRepo.GetByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	if !s.catalog.Completeness(records).Complete() {
		return app, nil
	}

	if err := app.MarkDocumentsComplete(app.ApplicantID.String()); err != nil {
		return nil, err
	}
	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("Application moved into review",
		"application_id", app.ID.String(),
	)

	publishEvent(ctx, s.logger, s.producer, newLifecycleEvent(ctx, shared.EventStatusUpdated, app, "All required documents uploaded"))

	return app, nil
}

// Download opens the stored contents of one uploaded document. Applicants can
// only read documents of their own applications; reviewer roles can read any.
func (s *DocumentServiceImpl) Download(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, docType string) (*document.Record, io.ReadCloser, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	if principal.Role == identity.RoleApplicant && app.ApplicantID != principal.UserID {
		return nil, nil, shared.NotFoundError{Resource: "loan application", ID: applicationID.String()}
	}

	rec, err := s.docRepo.GetByApplicationAndType(ctx, applicationID, document.Type(docType))
	if err != nil {
		return nil, nil, err
	}

	contents, err := s.files.Open(ctx, rec.StorageID)
	if err != nil {
		return nil, nil, err
	}

	return rec, contents, nil
}
