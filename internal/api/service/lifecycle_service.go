package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/clearbridge-loan-origination/internal/config"
	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
	"github.com/clearbridge-loan-origination/internal/platform/messaging/producers"
)

// LifecycleServiceImpl implements the LifecycleService interface
type LifecycleServiceImpl struct {
	appRepo  application.Repository
	docRepo  document.Repository
	catalog  document.Catalog
	policy   config.LifecycleConfig
	producer producers.MessagePublisher
	logger   *slog.Logger
}

// NewLifecycleService creates a new lifecycle review service
func NewLifecycleService(
	logger *slog.Logger,
	appRepo application.Repository,
	docRepo document.Repository,
	catalog document.Catalog,
	policy config.LifecycleConfig,
	producer producers.MessagePublisher,
) LifecycleService {
	return &LifecycleServiceImpl{
		appRepo:  appRepo,
		docRepo:  docRepo,
		catalog:  catalog,
		policy:   policy,
		producer: producer,
		logger:   logger,
	}
}

// Decide applies an approve or reject verdict to an application under review.
// The document gate runs before the state machine: a decision on an
// incomplete required set fails regardless of current status.
func (s *LifecycleServiceImpl) Decide(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, input DecisionInput) (*application.Application, error) {
	if input.Decision != DecisionApprove && input.Decision != DecisionReject {
		return nil, shared.ValidationError{Field: "decision", Reason: "decision must be approve or reject"}
	}
	if s.policy.RequireDecisionComment && strings.TrimSpace(input.Comment) == "" {
		return nil, shared.ValidationError{Field: "comment", Reason: "a decision comment is required"}
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	records, err := s.docRepo.GetByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	completeness := s.catalog.Completeness(records)
	if !completeness.Complete() {
		return nil, shared.PreconditionError{
			Precondition: "required documents are incomplete: missing " + joinTypes(completeness.Missing),
		}
	}

	updatedBy := principal.UserID.String()
	switch input.Decision {
	case DecisionApprove:
		err = app.Approve(input.ApprovedAmount, input.InterestRate, input.TenureMonths, input.Comment, updatedBy)
	case DecisionReject:
		err = app.Reject(input.RejectionReason, input.Comment, updatedBy)
	}
	if err != nil {
		return nil, err
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("Loan application decided",
		"application_id", app.ID.String(),
		"decision", string(input.Decision),
		"decided_by", updatedBy,
	)

	publishEvent(ctx, s.logger, s.producer, newLifecycleEvent(ctx, shared.EventStatusUpdated, app, input.Comment))

	return app, nil
}

// RequestAdditionalDocuments sends an application back to pending and resets
// its document flags
func (s *LifecycleServiceImpl) RequestAdditionalDocuments(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, comment string) (*application.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := app.RequestAdditionalDocuments(comment, principal.UserID.String()); err != nil {
		return nil, err
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("Additional documents requested",
		"application_id", app.ID.String(),
		"requested_by", principal.UserID.String(),
	)

	publishEvent(ctx, s.logger, s.producer, newLifecycleEvent(ctx, shared.EventDocumentsRequested, app, app.LastHistoryEntry().Comment))

	return app, nil
}

func joinTypes(types []document.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
