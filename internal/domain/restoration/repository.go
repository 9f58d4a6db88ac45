package restoration

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages restoration request persistence
type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)

	// GetPendingByApplication returns the pending request for an application,
	// or nil when none exists. At most one pending request per application is
	// permitted.
	GetPendingByApplication(ctx context.Context, applicationID uuid.UUID) (*Request, error)
	GetByRequester(ctx context.Context, requestedBy uuid.UUID) ([]*Request, error)

	// GetAll lists requests, optionally filtered by status ("" means all),
	// newest first.
	GetAll(ctx context.Context, status Status) ([]*Request, error)
	Update(ctx context.Context, req *Request) error
	DeleteByApplication(ctx context.Context, applicationID uuid.UUID) error
}
