package application

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages loan application persistence. Read operations exclude
// soft-deleted applications unless the method says otherwise. Update commits
// the aggregate's field changes, the newest history entry and the version
// bump as one atomic conditional write; a version mismatch surfaces as
// shared.ConflictError.
type Repository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*Application, error)
	GetDeletedByID(ctx context.Context, id uuid.UUID) (*Application, error)
	GetByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*Application, error)
	GetAll(ctx context.Context) ([]*Application, error)
	GetDeleted(ctx context.Context) ([]*Application, error)
	Update(ctx context.Context, app *Application) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}
