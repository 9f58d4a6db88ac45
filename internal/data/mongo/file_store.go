package mongo

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

// GridFSBucketName is the bucket holding uploaded document contents
const GridFSBucketName = "document_files"

// GridFSFileStore implements document.FileStore on a MongoDB GridFS bucket.
// Storage IDs are the hex form of the GridFS file ObjectID.
type GridFSFileStore struct {
	bucket *gridfs.Bucket
	logger *slog.Logger
}

// NewGridFSFileStore creates a file store backed by a GridFS bucket in the
// given database
func NewGridFSFileStore(logger *slog.Logger, db *mongo.Database) (document.FileStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(GridFSBucketName))
	if err != nil {
		return nil, fmt.Errorf("failed to create gridfs bucket: %w", err)
	}

	return &GridFSFileStore{
		bucket: bucket,
		logger: logger,
	}, nil
}

// Save streams the file contents into GridFS and returns the storage ID
func (s *GridFSFileStore) Save(ctx context.Context, fileName string, contents io.Reader) (string, error) {
	id, err := s.bucket.UploadFromStream(fileName, contents)
	if err != nil {
		s.logger.Error("Failed to store file contents",
			"file_name", fileName,
			"error", err)
		return "", fmt.Errorf("failed to store file contents: %w", err)
	}

	return id.Hex(), nil
}

// Open returns a reader over the stored file contents
func (s *GridFSFileStore) Open(ctx context.Context, storageID string) (io.ReadCloser, error) {
	id, err := primitive.ObjectIDFromHex(storageID)
	if err != nil {
		return nil, shared.NotFoundError{Resource: "stored file", ID: storageID}
	}

	stream, err := s.bucket.OpenDownloadStream(id)
	if err != nil {
		if err == gridfs.ErrFileNotFound {
			return nil, shared.NotFoundError{Resource: "stored file", ID: storageID}
		}
		s.logger.Error("Failed to open stored file",
			"storage_id", storageID,
			"error", err)
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}

	return stream, nil
}

// Delete removes the stored file contents. A missing file is not an error;
// replacement uploads and the purge cascade both tolerate it.
func (s *GridFSFileStore) Delete(ctx context.Context, storageID string) error {
	id, err := primitive.ObjectIDFromHex(storageID)
	if err != nil {
		return nil
	}

	if err := s.bucket.Delete(id); err != nil {
		if err == gridfs.ErrFileNotFound {
			return nil
		}
		s.logger.Error("Failed to delete stored file",
			"storage_id", storageID,
			"error", err)
		return fmt.Errorf("failed to delete stored file: %w", err)
	}

	return nil
}
