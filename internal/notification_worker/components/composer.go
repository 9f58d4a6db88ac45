package components

import (
	"fmt"

	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

// TemplateComposer renders lifecycle events into email subject and body text
type TemplateComposer struct{}

// NewTemplateComposer creates a new composer
func NewTemplateComposer() *TemplateComposer {
	return &TemplateComposer{}
}

// Compose builds the notification text for an event addressed to the given
// recipient. Unknown event types return an error so the dispatcher can drop
// them instead of sending an empty email.
func (c *TemplateComposer) Compose(event *shared.LifecycleEvent, recipient *identity.User) (string, string, error) {
	greeting := fmt.Sprintf("Dear %s,\n\n", recipient.FullName())
	footer := "\n\nRegards,\nClearBridge Loan Origination"

	switch event.Type {
	case shared.EventApplicationSubmitted:
		subject := "Loan application received"
		body := greeting + fmt.Sprintf(
			"Your %s loan application for %s has been received and is pending review.\nApplication ID: %s",
			event.LoanType, formatAmount(event.Amount), event.ApplicationID.String(),
		) + footer
		return subject, body, nil

	case shared.EventStatusUpdated:
		subject := "Loan application status update"
		body := greeting + fmt.Sprintf(
			"The status of your loan application %s has changed to %s.",
			event.ApplicationID.String(), event.Status,
		)
		if event.Comment != "" {
			body += "\nReviewer comment: " + event.Comment
		}
		return subject, body + footer, nil

	case shared.EventDocumentsRequested:
		subject := "Additional documents required"
		body := greeting + fmt.Sprintf(
			"The reviewer of your loan application %s has requested additional documents.",
			event.ApplicationID.String(),
		)
		if event.Comment != "" {
			body += "\nReviewer comment: " + event.Comment
		}
		body += "\nPlease sign in and upload the requested documents to resume the review."
		return subject, body + footer, nil

	case shared.EventApplicationDeleted:
		subject := "Loan application deleted"
		body := greeting + fmt.Sprintf(
			"Your loan application %s has been deleted. If this was a mistake, contact support to request restoration.",
			event.ApplicationID.String(),
		) + footer
		return subject, body, nil

	case shared.EventRestorationRequested:
		subject := "Restoration request pending review"
		body := greeting + fmt.Sprintf(
			"A restoration request for loan application %s is awaiting your review.",
			event.ApplicationID.String(),
		)
		if event.Comment != "" {
			body += "\nReason: " + event.Comment
		}
		return subject, body + footer, nil

	case shared.EventApplicationRestored:
		subject := "Loan application restored"
		body := greeting + fmt.Sprintf(
			"Your loan application %s has been restored and is available again.",
			event.ApplicationID.String(),
		) + footer
		return subject, body, nil

	case shared.EventRestorationRejected:
		subject := "Restoration request declined"
		body := greeting + fmt.Sprintf(
			"The restoration request for loan application %s has been declined.",
			event.ApplicationID.String(),
		)
		if event.Comment != "" {
			body += "\nReviewer notes: " + event.Comment
		}
		return subject, body + footer, nil

	case shared.EventApplicationPurged:
		subject := "Loan application permanently removed"
		body := greeting + fmt.Sprintf(
			"Your loan application %s and all associated documents have been permanently removed.",
			event.ApplicationID.String(),
		) + footer
		return subject, body, nil
	}

	return "", "", fmt.Errorf("no notification template for event type %s", event.Type)
}

// formatAmount renders minor currency units as a decimal string
func formatAmount(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}
