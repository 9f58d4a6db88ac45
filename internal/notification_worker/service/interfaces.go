package service

import (
	"context"

	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

// DispatchService defines the interface for turning lifecycle events into
// notifications.
type DispatchService interface {
	DispatchNotification(ctx context.Context, event *shared.LifecycleEvent) error
}

// Composer renders an event into email subject and body text for a recipient
type Composer interface {
	Compose(event *shared.LifecycleEvent, recipient *identity.User) (subject string, body string, err error)
}

// Sender delivers a composed notification
type Sender interface {
	Send(ctx context.Context, to []string, subject, body string) error
}
