package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

const (
	// DocumentCollectionName is the name of the document metadata
	// collection in MongoDB
	DocumentCollectionName = "documents"
)

// DocumentRepository implements the document.Repository interface for MongoDB
type DocumentRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewDocumentRepository creates a new MongoDB document metadata repository
func NewDocumentRepository(logger *slog.Logger, db *mongo.Database) document.Repository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores the record, replacing any previous upload of the same type
// for the same application. The replaced record is returned so the caller
// can remove its stored file.
func (r *DocumentRepository) Upsert(ctx context.Context, rec *document.Record) (*document.Record, error) {
	collection := r.db.Collection(DocumentCollectionName)

	filter := bson.M{"application_id": rec.ApplicationID, "type": rec.Type}

	var previous document.Record
	err := collection.FindOneAndDelete(ctx, filter).Decode(&previous)
	replaced := (*document.Record)(nil)
	switch {
	case err == nil:
		replaced = &previous
	case errors.Is(err, mongo.ErrNoDocuments):
		// First upload of this type
	default:
		r.logger.Error("Failed to replace existing document record",
			"application_id", rec.ApplicationID.String(),
			"document_type", string(rec.Type),
			"error", err)
		return nil, fmt.Errorf("failed to replace existing document record: %w", err)
	}

	if _, err := collection.InsertOne(ctx, rec); err != nil {
		r.logger.Error("Failed to store document record",
			"application_id", rec.ApplicationID.String(),
			"document_type", string(rec.Type),
			"error", err)
		return nil, fmt.Errorf("failed to store document record: %w", err)
	}

	return replaced, nil
}

// GetByApplication retrieves all document records for an application,
// oldest upload first
func (r *DocumentRepository) GetByApplication(ctx context.Context, applicationID uuid.UUID) ([]*document.Record, error) {
	collection := r.db.Collection(DocumentCollectionName)

	cursor, err := collection.Find(ctx,
		bson.M{"application_id": applicationID},
		options.Find().SetSort(bson.M{"uploaded_at": 1}))
	if err != nil {
		r.logger.Error("Failed to query document records",
			"application_id", applicationID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to query document records: %w", err)
	}
	defer cursor.Close(ctx)

	var recs []*document.Record
	if err := cursor.All(ctx, &recs); err != nil {
		r.logger.Error("Failed to decode document records",
			"application_id", applicationID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode document records: %w", err)
	}

	return recs, nil
}

// GetByApplicationAndType retrieves a single document record
func (r *DocumentRepository) GetByApplicationAndType(ctx context.Context, applicationID uuid.UUID, t document.Type) (*document.Record, error) {
	collection := r.db.Collection(DocumentCollectionName)

	var rec document.Record
	err := collection.FindOne(ctx, bson.M{"application_id": applicationID, "type": t}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.NotFoundError{Resource: "document", ID: string(t)}
		}
		r.logger.Error("Failed to get document record",
			"application_id", applicationID.String(),
			"document_type", string(t),
			"error", err)
		return nil, fmt.Errorf("failed to get document record: %w", err)
	}

	return &rec, nil
}

// DeleteByApplication removes all document records for an application.
// Part of the permanent delete cascade; file contents are removed separately
// through the file store.
func (r *DocumentRepository) DeleteByApplication(ctx context.Context, applicationID uuid.UUID) error {
	collection := r.db.Collection(DocumentCollectionName)

	_, err := collection.DeleteMany(ctx, bson.M{"application_id": applicationID})
	if err != nil {
		r.logger.Error("Failed to delete document records for application",
			"application_id", applicationID.String(),
			"error", err)
		return fmt.Errorf("failed to delete document records: %w", err)
	}

	return nil
}
