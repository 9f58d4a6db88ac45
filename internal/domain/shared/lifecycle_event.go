package shared

import (
	"time"

	"github.com/google/uuid"
)

// EventType classifies lifecycle events published for notification dispatch
type EventType string

const (
	EventApplicationSubmitted EventType = "APPLICATION_SUBMITTED"
	EventStatusUpdated        EventType = "STATUS_UPDATED"
	EventDocumentsRequested   EventType = "DOCUMENTS_REQUESTED"
	EventApplicationDeleted   EventType = "APPLICATION_DELETED"
	EventRestorationRequested EventType = "RESTORATION_REQUESTED"
	EventApplicationRestored  EventType = "APPLICATION_RESTORED"
	EventRestorationRejected  EventType = "RESTORATION_REJECTED"
	EventApplicationPurged    EventType = "APPLICATION_PURGED"
)

// LifecycleEvent defines a Kafka message emitted after a committed lifecycle
// or restoration mutation. Events are advisory: delivery drives notifications,
// not state.
type LifecycleEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Type          EventType `json:"type"`
	ApplicationID uuid.UUID `json:"application_id"`
	ApplicantID   uuid.UUID `json:"applicant_id"`
	LoanType      string    `json:"loan_type,omitempty"`
	Amount        int64     `json:"amount,omitempty"` // Minor currency units
	Status        string    `json:"status,omitempty"`
	Comment       string    `json:"comment,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
