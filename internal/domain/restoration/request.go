// Package restoration holds the restoration request aggregate: the two-party
// workflow through which an underwriter asks a system admin to reinstate a
// soft-deleted loan application.
package restoration

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

// MinReasonLength is the minimum length of a restoration reason
const MinReasonLength = 10

// Status defines the review states of a restoration request
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid reports whether s is one of the known statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Request is an underwriter's petition to restore a soft-deleted
// application. Once decided it is never mutated again.
type Request struct {
	ID            uuid.UUID  `json:"id" bson:"_id"`
	ApplicationID uuid.UUID  `json:"application_id" bson:"application_id"`
	RequestedBy   uuid.UUID  `json:"requested_by" bson:"requested_by"`
	Reason        string     `json:"reason" bson:"reason"`
	Status        Status     `json:"status" bson:"status"`
	ReviewedBy    *uuid.UUID `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	ReviewNotes   string     `json:"review_notes,omitempty" bson:"review_notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
}

// NewRequest validates the reason and creates a pending restoration request
func NewRequest(applicationID, requestedBy uuid.UUID, reason string) (*Request, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < MinReasonLength {
		return nil, shared.ValidationError{Field: "reason", Reason: "restoration reason must be at least 10 characters"}
	}
	now := time.Now()
	return &Request{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		RequestedBy:   requestedBy,
		Reason:        reason,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Approve marks the request approved. Deciding an already-reviewed request
// fails; a second approval must not silently succeed.
func (r *Request) Approve(reviewer uuid.UUID, notes string) error {
	if r.Status != StatusPending {
		return shared.PreconditionError{Precondition: "restoration request has already been reviewed"}
	}
	now := time.Now()
	r.Status = StatusApproved
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &now
	r.ReviewNotes = strings.TrimSpace(notes)
	r.UpdatedAt = now
	return nil
}

// Reject marks the request rejected. Unlike approval, reviewer notes are
// mandatory here.
func (r *Request) Reject(reviewer uuid.UUID, notes string) error {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return shared.ValidationError{Field: "notes", Reason: "rejection reason is required"}
	}
	if r.Status != StatusPending {
		return shared.PreconditionError{Precondition: "restoration request has already been reviewed"}
	}
	now := time.Now()
	r.Status = StatusRejected
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &now
	r.ReviewNotes = notes
	r.UpdatedAt = now
	return nil
}
