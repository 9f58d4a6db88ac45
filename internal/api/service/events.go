package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
	"github.com/clearbridge-loan-origination/internal/platform/messaging/producers"
)

// newLifecycleEvent builds an event from the application's current state
func newLifecycleEvent(ctx context.Context, eventType shared.EventType, app *application.Application, comment string) *shared.LifecycleEvent {
	return &shared.LifecycleEvent{
		EventID:       uuid.New(),
		Type:          eventType,
		ApplicationID: app.ID,
		ApplicantID:   app.ApplicantID,
		LoanType:      string(app.LoanType),
		Amount:        app.Amount,
		Status:        string(app.Status),
		Comment:       comment,
		CorrelationID: shared.CorrelationIDFromContext(ctx),
		OccurredAt:    time.Now().UTC(),
	}
}

// publishEvent sends a lifecycle event for notification dispatch. Events are
// advisory; a publish failure is logged and the request still succeeds.
func publishEvent(ctx context.Context, logger *slog.Logger, producer producers.MessagePublisher, event *shared.LifecycleEvent) {
	if producer == nil {
		return
	}
	if err := producer.Publish(ctx, event.ApplicationID.String(), event); err != nil {
		logger.Error("Failed to publish lifecycle event",
			"event_type", string(event.Type),
			"application_id", event.ApplicationID.String(),
			"error", err,
		)
	}
}
