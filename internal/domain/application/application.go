// Package application holds the loan application aggregate and its lifecycle
// rules: the status state machine, the append-only status history, and the
// approval/rejection outcome fields.
package application

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

// LoanType defines the products an applicant can apply for
type LoanType string

const (
	LoanTypePersonal  LoanType = "personal"
	LoanTypeHome      LoanType = "home"
	LoanTypeVehicle   LoanType = "vehicle"
	LoanTypeBusiness  LoanType = "business"
	LoanTypeEducation LoanType = "education"
)

// IsValid reports whether t is a known loan type
func (t LoanType) IsValid() bool {
	switch t {
	case LoanTypePersonal, LoanTypeHome, LoanTypeVehicle, LoanTypeBusiness, LoanTypeEducation:
		return true
	}
	return false
}

// HistoryEntry records one status change. Entries are append-only and the
// last entry always matches the current status field.
type HistoryEntry struct {
	Status    Status    `json:"status" bson:"status"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
}

// ApprovalDetails captures the terms granted on approval
type ApprovalDetails struct {
	ApprovedAmount int64   `json:"approved_amount" bson:"approved_amount"` // Minor currency units
	InterestRate   float64 `json:"interest_rate" bson:"interest_rate"`     // Annual percentage
	TenureMonths   int     `json:"tenure_months" bson:"tenure_months"`
	EMI            int64   `json:"emi" bson:"emi"` // Minor currency units, rounded
}

// Application is the loan application aggregate
type Application struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	ApplicantID uuid.UUID `json:"applicant_id" bson:"applicant_id"`

	LoanType     LoanType `json:"loan_type" bson:"loan_type"`
	Amount       int64    `json:"amount" bson:"amount"` // Minor currency units
	Purpose      string   `json:"purpose" bson:"purpose"`
	TenureMonths int      `json:"tenure_months" bson:"tenure_months"`

	Status                       Status `json:"status" bson:"status"`
	DocumentsUploaded            bool   `json:"documents_uploaded" bson:"documents_uploaded"`
	AdditionalDocumentsRequested bool   `json:"additional_documents_requested" bson:"additional_documents_requested"`

	StatusHistory []HistoryEntry `json:"status_history" bson:"status_history"`

	RejectionReason string           `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	ApprovalDetails *ApprovalDetails `json:"approval_details,omitempty" bson:"approval_details,omitempty"`

	IsDeleted bool       `json:"is_deleted" bson:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`

	Version   int       `json:"version" bson:"version"` // For optimistic locking
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewApplication validates a submission and creates an application in the
// pending state with its seed history entry.
func NewApplication(applicantID uuid.UUID, loanType LoanType, amount int64, purpose string, tenureMonths int) (*Application, error) {
	if applicantID == uuid.Nil {
		return nil, shared.ValidationError{Field: "applicant_id", Reason: "applicant is required"}
	}
	if !loanType.IsValid() {
		return nil, shared.ValidationError{Field: "loan_type", Reason: "unknown loan type " + string(loanType)}
	}
	if amount <= 0 {
		return nil, shared.ValidationError{Field: "amount", Reason: "amount must be positive"}
	}
	if strings.TrimSpace(purpose) == "" {
		return nil, shared.ValidationError{Field: "purpose", Reason: "purpose is required"}
	}
	if tenureMonths <= 0 {
		return nil, shared.ValidationError{Field: "tenure_months", Reason: "tenure must be positive"}
	}

	now := time.Now()
	return &Application{
		ID:           uuid.New(),
		ApplicantID:  applicantID,
		LoanType:     loanType,
		Amount:       amount,
		Purpose:      strings.TrimSpace(purpose),
		TenureMonths: tenureMonths,
		Status:       StatusPending,
		StatusHistory: []HistoryEntry{{
			Status:    StatusPending,
			Timestamp: now,
			Comment:   "Application submitted",
			UpdatedBy: applicantID.String(),
		}},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// transition moves the application to target and appends the matching history
// entry. Each call appends exactly one entry and bumps the version once; the
// repository relies on this when committing the change as a single
// conditional update.
func (a *Application) transition(target Status, comment, updatedBy string) error {
	if !a.Status.CanTransitionTo(target) {
		return shared.PreconditionError{
			Precondition: "status " + string(a.Status) + " does not permit transition to " + string(target),
		}
	}
	a.Status = target
	a.appendHistory(target, comment, updatedBy)
	return nil
}

func (a *Application) appendHistory(status Status, comment, updatedBy string) {
	now := time.Now()
	a.StatusHistory = append(a.StatusHistory, HistoryEntry{
		Status:    status,
		Timestamp: now,
		Comment:   comment,
		UpdatedBy: updatedBy,
	})
	a.UpdatedAt = now
	a.Version++
}

// MarkDocumentsComplete moves a pending application into review once the
// required document set is present. Completeness is checked by the caller
// against the document catalog.
func (a *Application) MarkDocumentsComplete(updatedBy string) error {
	if a.IsDeleted {
		return shared.PreconditionError{Precondition: "application is deleted"}
	}
	if a.Status != StatusPending {
		return shared.PreconditionError{Precondition: "only pending applications can move into review"}
	}
	if err := a.transition(StatusUnderReview, "All required documents uploaded", updatedBy); err != nil {
		return err
	}
	a.DocumentsUploaded = true
	a.AdditionalDocumentsRequested = false
	return nil
}

// Approve records the underwriter's decision with computed EMI. The caller
// must already have verified document completeness.
func (a *Application) Approve(approvedAmount int64, interestRate float64, tenureMonths int, comment, updatedBy string) error {
	if a.IsDeleted {
		return shared.PreconditionError{Precondition: "application is deleted"}
	}
	emi, err := ComputeEMI(approvedAmount, interestRate, tenureMonths)
	if err != nil {
		return err
	}
	if err := a.transition(StatusApproved, comment, updatedBy); err != nil {
		return err
	}
	a.ApprovalDetails = &ApprovalDetails{
		ApprovedAmount: approvedAmount,
		InterestRate:   interestRate,
		TenureMonths:   tenureMonths,
		EMI:            emi,
	}
	a.RejectionReason = ""
	return nil
}

// Reject records the underwriter's rejection with its mandatory reason
func (a *Application) Reject(reason, comment, updatedBy string) error {
	if a.IsDeleted {
		return shared.PreconditionError{Precondition: "application is deleted"}
	}
	if strings.TrimSpace(reason) == "" {
		return shared.ValidationError{Field: "rejection_reason", Reason: "rejection reason is required"}
	}
	if err := a.transition(StatusRejected, comment, updatedBy); err != nil {
		return err
	}
	a.RejectionReason = strings.TrimSpace(reason)
	a.ApprovalDetails = nil
	return nil
}

// RequestAdditionalDocuments sends the application back to pending and resets
// the document flags so the applicant can complete the set again.
func (a *Application) RequestAdditionalDocuments(comment, updatedBy string) error {
	if a.IsDeleted {
		return shared.PreconditionError{Precondition: "application is deleted"}
	}
	if comment == "" {
		comment = "Additional documents requested"
	}
	if err := a.transition(StatusPending, comment, updatedBy); err != nil {
		return err
	}
	a.AdditionalDocumentsRequested = true
	a.DocumentsUploaded = false
	return nil
}

// SoftDelete hides the application without removing it. Approved
// applications cannot be deleted; the history keeps the current status.
func (a *Application) SoftDelete(updatedBy string) error {
	if a.IsDeleted {
		return shared.PreconditionError{Precondition: "application is already deleted"}
	}
	if a.Status == StatusApproved {
		return shared.PreconditionError{Precondition: "approved applications cannot be deleted"}
	}
	now := time.Now()
	a.IsDeleted = true
	a.DeletedAt = &now
	a.appendHistory(a.Status, "Application deleted", updatedBy)
	return nil
}

// Restore clears the soft-delete marker after an approved restoration
// request. The status field itself is left untouched.
func (a *Application) Restore(reason, updatedBy string) error {
	if !a.IsDeleted {
		return shared.PreconditionError{Precondition: "application is not deleted"}
	}
	a.IsDeleted = false
	a.DeletedAt = nil
	a.appendHistory(a.Status, "Application restored by system admin. Reason: "+reason, updatedBy)
	return nil
}

// LastHistoryEntry returns the most recent status history entry
func (a *Application) LastHistoryEntry() HistoryEntry {
	return a.StatusHistory[len(a.StatusHistory)-1]
}
