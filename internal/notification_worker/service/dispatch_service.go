package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

type DispatchServiceImpl struct {
	users    identity.Repository
	composer Composer
	sender   Sender
	logger   *slog.Logger
}

func NewDispatchService(
	users identity.Repository,
	composer Composer,
	sender Sender,
	logger *slog.Logger,
) DispatchService {
	return &DispatchServiceImpl{
		users:    users,
		composer: composer,
		sender:   sender,
		logger:   logger,
	}
}

// DispatchNotification resolves the recipients of an event, composes the
// notification text and sends one email per recipient. Events whose recipient
// no longer exists, or whose type has no template, are acknowledged without
// delivery since a retry cannot fix either.
func (s *DispatchServiceImpl) DispatchNotification(ctx context.Context, event *shared.LifecycleEvent) error {
	logger := s.logger
	if event.CorrelationID != "" {
		logger = s.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Dispatching notification",
		"event_id", event.EventID.String(),
		"type", event.Type,
		"application_id", event.ApplicationID.String(),
	)

	recipients, err := s.resolveRecipients(ctx, event)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound{}) {
			logger.Warn("Notification recipient no longer exists, dropping event",
				"event_id", event.EventID.String(),
				"applicant_id", event.ApplicantID.String(),
			)
			return nil
		}
		return fmt.Errorf("failed to resolve recipients for event %s: %w", event.EventID.String(), err)
	}
	if len(recipients) == 0 {
		logger.Warn("No recipients for event, dropping",
			"event_id", event.EventID.String(),
			"type", event.Type,
		)
		return nil
	}

	for _, recipient := range recipients {
		subject, body, err := s.composer.Compose(event, recipient)
		if err != nil {
			logger.Warn("No template for event, dropping",
				"event_id", event.EventID.String(),
				"type", event.Type,
				"error", err,
			)
			return nil
		}

		if err := s.sender.Send(ctx, []string{recipient.Email}, subject, body); err != nil {
			return fmt.Errorf("failed to deliver notification for event %s: %w", event.EventID.String(), err)
		}

		logger.Info("Notification delivered",
			"event_id", event.EventID.String(),
			"recipient", recipient.Email,
		)
	}

	return nil
}

// resolveRecipients maps an event to its audience. Restoration requests go to
// every system admin, everything else goes to the applicant.
func (s *DispatchServiceImpl) resolveRecipients(ctx context.Context, event *shared.LifecycleEvent) ([]*identity.User, error) {
	if event.Type == shared.EventRestorationRequested {
		return s.users.GetByRole(ctx, identity.RoleSystemAdmin)
	}

	applicant, err := s.users.GetByID(ctx, event.ApplicantID)
	if err != nil {
		return nil, err
	}
	return []*identity.User{applicant}, nil
}
