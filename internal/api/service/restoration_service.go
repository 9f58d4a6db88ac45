package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/domain/restoration"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
	"github.com/clearbridge-loan-origination/internal/platform/messaging/producers"
)

// RestorationServiceImpl implements the RestorationService interface
type RestorationServiceImpl struct {
	appRepo  application.Repository
	restRepo restoration.Repository
	docRepo  document.Repository
	files    document.FileStore
	producer producers.MessagePublisher
	logger   *slog.Logger
}

// NewRestorationService creates a new restoration workflow service
func NewRestorationService(
	logger *slog.Logger,
	appRepo application.Repository,
	restRepo restoration.Repository,
	docRepo document.Repository,
	files document.FileStore,
	producer producers.MessagePublisher,
) RestorationService {
	return &RestorationServiceImpl{
		appRepo:  appRepo,
		restRepo: restRepo,
		docRepo:  docRepo,
		files:    files,
		producer: producer,
		logger:   logger,
	}
}

// Request opens a restoration request for a soft-deleted application
func (s *RestorationServiceImpl) Request(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, reason string) (*restoration.Request, error) {
	app, err := s.appRepo.GetDeletedByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	pending, err := s.restRepo.GetPendingByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, shared.PreconditionError{Precondition: "a pending restoration request already exists for this application"}
	}

	req, err := restoration.NewRequest(applicationID, principal.UserID, reason)
	if err != nil {
		return nil, err
	}

	if err := s.restRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("Restoration requested",
		"request_id", req.ID.String(),
		"application_id", applicationID.String(),
		"requested_by", principal.UserID.String(),
	)

	publishEvent(ctx, s.logger, s.producer, newLifecycleEvent(ctx, shared.EventRestorationRequested, app, req.Reason))

	return req, nil
}

// List lists restoration requests, optionally filtered by status
func (s *RestorationServiceImpl) List(ctx context.Context, status string) ([]*restoration.Request, error) {
	if status != "" {
		parsed := restoration.Status(status)
		if !parsed.IsValid() {
			return nil, shared.ValidationError{Field: "status", Reason: "unknown restoration status " + status}
		}
		return s.restRepo.GetAll(ctx, parsed)
	}
	return s.restRepo.GetAll(ctx, "")
}

// ListMine lists the requests opened by the calling principal
func (s *RestorationServiceImpl) ListMine(ctx context.Context, principal *identity.Principal) ([]*restoration.Request, error) {
	return s.restRepo.GetByRequester(ctx, principal.UserID)
}

// Approve grants a pending request and restores the application. The request
// state is checked before any application lookup: once the first approval
// restores the application, the soft-deleted row is gone and a second
// approval must fail on the already-reviewed request, not on the lookup.
func (s *RestorationServiceImpl) Approve(ctx context.Context, principal *identity.Principal, requestID uuid.UUID, notes string) (*restoration.Request, error) {
	req, err := s.restRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := req.Approve(principal.UserID, notes); err != nil {
		return nil, err
	}

	app, err := s.appRepo.GetDeletedByID(ctx, req.ApplicationID)
	if err != nil {
		if !errors.Is(err, shared.NotFoundError{}) {
			return nil, err
		}
		// The request is still pending but the application is no longer
		// soft-deleted: an earlier approval restored it and failed before
		// the request decision committed. Finish the decision.
		app, err = s.appRepo.GetByID(ctx, req.ApplicationID)
		if err != nil {
			return nil, err
		}
	} else {
		if err := app.Restore(req.Reason, principal.UserID.String()); err != nil {
			return nil, err
		}
		if err := s.appRepo.Update(ctx, app); err != nil {
			return nil, err
		}
	}

	if err := s.restRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("Restoration request approved",
		"request_id", req.ID.String(),
		"application_id", req.ApplicationID.String(),
		"reviewed_by", principal.UserID.String(),
	)

	publishEvent(ctx, s.logger, s.producer, newLifecycleEvent(ctx, shared.EventApplicationRestored, app, req.Reason))

	return req, nil
}

// Reject denies a pending request with mandatory notes
func (s *RestorationServiceImpl) Reject(ctx context.Context, principal *identity.Principal, requestID uuid.UUID, notes string) (*restoration.Request, error) {
	req, err := s.restRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := req.Reject(principal.UserID, notes); err != nil {
		return nil, err
	}

	if err := s.restRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("Restoration request rejected",
		"request_id", req.ID.String(),
		"application_id", req.ApplicationID.String(),
		"reviewed_by", principal.UserID.String(),
	)

	if app, err := s.appRepo.GetDeletedByID(ctx, req.ApplicationID); err == nil {
		publishEvent(ctx, s.logger, s.producer, newLifecycleEvent(ctx, shared.EventRestorationRejected, app, req.ReviewNotes))
	}

	return req, nil
}

// PermanentlyDelete purges a soft-deleted application along with its
// documents, stored files and restoration requests
func (s *RestorationServiceImpl) PermanentlyDelete(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, confirmation string) error {
	if confirmation != PermanentDeleteConfirmation {
		return shared.ValidationError{Field: "confirmation", Reason: `confirmation must be the literal "DELETE"`}
	}

	app, err := s.appRepo.GetDeletedByID(ctx, applicationID)
	if err != nil {
		return err
	}

	records, err := s.docRepo.GetByApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := s.files.Delete(ctx, rec.StorageID); err != nil {
			s.logger.Error("Failed to delete stored file during purge",
				"application_id", applicationID.String(),
				"storage_id", rec.StorageID,
				"error", err)
		}
	}
	if err := s.docRepo.DeleteByApplication(ctx, applicationID); err != nil {
		return err
	}
	if err := s.restRepo.DeleteByApplication(ctx, applicationID); err != nil {
		return err
	}
	if err := s.appRepo.HardDelete(ctx, applicationID); err != nil {
		return err
	}

	s.logger.Info("Loan application permanently deleted",
		"application_id", applicationID.String(),
		"deleted_by", principal.UserID.String(),
		"documents_removed", len(records),
	)

	publishEvent(ctx, s.logger, s.producer, newLifecycleEvent(ctx, shared.EventApplicationPurged, app, "Application permanently deleted"))

	return nil
}
