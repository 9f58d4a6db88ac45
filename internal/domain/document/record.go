package document

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Record is the metadata for one uploaded document. File bytes live in the
// file store under StorageID; re-uploading a type replaces the record.
type Record struct {
	ID            uuid.UUID `json:"id" bson:"_id"`
	ApplicationID uuid.UUID `json:"application_id" bson:"application_id"`
	ApplicantID   uuid.UUID `json:"applicant_id" bson:"applicant_id"`
	Type          Type      `json:"type" bson:"type"`
	FileName      string    `json:"file_name" bson:"file_name"`
	FileSize      int64     `json:"file_size" bson:"file_size"`
	ContentType   string    `json:"content_type" bson:"content_type"`
	StorageID     string    `json:"storage_id" bson:"storage_id"`
	UploadedAt    time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// Repository manages document metadata persistence
type Repository interface {
	// Upsert stores the record, replacing any previous upload of the same
	// type for the same application. The replaced record, if any, is
	// returned so its stored file can be removed.
	Upsert(ctx context.Context, rec *Record) (*Record, error)
	GetByApplication(ctx context.Context, applicationID uuid.UUID) ([]*Record, error)
	GetByApplicationAndType(ctx context.Context, applicationID uuid.UUID, t Type) (*Record, error)
	DeleteByApplication(ctx context.Context, applicationID uuid.UUID) error
}

// FileStore persists uploaded file contents keyed by an opaque storage ID
type FileStore interface {
	Save(ctx context.Context, fileName string, contents io.Reader) (string, error)
	Open(ctx context.Context, storageID string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageID string) error
}
