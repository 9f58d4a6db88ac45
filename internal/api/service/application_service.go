package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
	"github.com/clearbridge-loan-origination/internal/platform/messaging/producers"
)

// ApplicationServiceImpl implements the ApplicationService interface
type ApplicationServiceImpl struct {
	appRepo  application.Repository
	docRepo  document.Repository
	catalog  document.Catalog
	producer producers.MessagePublisher
	logger   *slog.Logger
}

// NewApplicationService creates a new application service
func NewApplicationService(
	logger *slog.Logger,
	appRepo application.Repository,
	docRepo document.Repository,
	catalog document.Catalog,
	producer producers.MessagePublisher,
) ApplicationService {
	return &ApplicationServiceImpl{
		appRepo:  appRepo,
		docRepo:  docRepo,
		catalog:  catalog,
		producer: producer,
		logger:   logger,
	}
}

// Submit validates and stores a new application in the pending state
func (s *ApplicationServiceImpl) Submit(ctx context.Context, principal *identity.Principal, input SubmitApplicationInput) (*application.Application, error) {
	app, err := application.NewApplication(
		principal.UserID,
		application.LoanType(input.LoanType),
		input.Amount,
		input.Purpose,
		input.TenureMonths,
	)
	if err != nil {
		return nil, err
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("Loan application submitted",
		"application_id", app.ID.String(),
		"applicant_id", app.ApplicantID.String(),
		"loan_type", string(app.LoanType),
		"amount", app.Amount,
	)

	publishEvent(ctx, s.logger, s.producer, newLifecycleEvent(ctx, shared.EventApplicationSubmitted, app, "Application submitted"))

	return app, nil
}

// Get retrieves an application with its document state. Ownership failures
// surface as NotFoundError so applicants cannot probe for other applicants'
// application IDs.
func (s *ApplicationServiceImpl) Get(ctx context.Context, principal *identity.Principal, id uuid.UUID) (*ApplicationView, error) {
	app, err := s.loadVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	records, err := s.docRepo.GetByApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ApplicationView{
		Application:  app,
		Documents:    s.catalog.Join(records),
		Completeness: s.catalog.Completeness(records),
	}, nil
}

// ListOwn lists the caller's applications, newest first
func (s *ApplicationServiceImpl) ListOwn(ctx context.Context, principal *identity.Principal) ([]*application.Application, error) {
	return s.appRepo.GetByApplicant(ctx, principal.UserID)
}

// ListAll lists every non-deleted application for reviewers
func (s *ApplicationServiceImpl) ListAll(ctx context.Context) ([]*application.Application, error) {
	return s.appRepo.GetAll(ctx)
}

// ListDeleted lists soft-deleted applications for admins
func (s *ApplicationServiceImpl) ListDeleted(ctx context.Context) ([]*application.Application, error) {
	return s.appRepo.GetDeleted(ctx)
}

// SoftDelete hides the caller's application without removing it
func (s *ApplicationServiceImpl) SoftDelete(ctx context.Context, principal *identity.Principal, id uuid.UUID) error {
	app, err := s.loadVisible(ctx, principal, id)
	if err != nil {
		return err
	}

	if err := app.SoftDelete(principal.UserID.String()); err != nil {
		return err
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return err
	}

	s.logger.Info("Loan application soft-deleted",
		"application_id", app.ID.String(),
		"deleted_by", principal.UserID.String(),
	)

	publishEvent(ctx, s.logger, s.producer, newLifecycleEvent(ctx, shared.EventApplicationDeleted, app, "Application deleted"))

	return nil
}

// loadVisible fetches an application and applies the ownership rule:
// applicants only see their own.
func (s *ApplicationServiceImpl) loadVisible(ctx context.Context, principal *identity.Principal, id uuid.UUID) (*application.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if principal.Role == identity.RoleApplicant && app.ApplicantID != principal.UserID {
		return nil, shared.NotFoundError{Resource: "loan application", ID: id.String()}
	}
	return app, nil
}
