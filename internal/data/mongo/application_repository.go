// Package mongo provides MongoDB implementations of the application,
// document and restoration repositories. Lifecycle mutations are committed as
// single conditional updates so the status field, the history append and the
// version bump land together or not at all.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

const (
	// ApplicationCollectionName is the name of the loan application
	// collection in MongoDB
	ApplicationCollectionName = "loan_applications"
)

// ApplicationRepository implements the application.Repository interface
// for MongoDB
type ApplicationRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewApplicationRepository creates a new MongoDB application repository
func NewApplicationRepository(logger *slog.Logger, db *mongo.Database) application.Repository {
	return &ApplicationRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new loan application
func (r *ApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	collection := r.db.Collection(ApplicationCollectionName)

	_, err := collection.InsertOne(ctx, app)
	if err != nil {
		r.logger.Error("Failed to create loan application",
			"application_id", app.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create loan application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by its ID, excluding soft-deleted ones
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*application.Application, error) {
	return r.findOne(ctx, bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}, id)
}

// GetDeletedByID retrieves a soft-deleted application by its ID. Used by the
// restoration workflow, which only operates on deleted applications.
func (r *ApplicationRepository) GetDeletedByID(ctx context.Context, id uuid.UUID) (*application.Application, error) {
	return r.findOne(ctx, bson.M{"_id": id, "is_deleted": true}, id)
}

func (r *ApplicationRepository) findOne(ctx context.Context, filter bson.M, id uuid.UUID) (*application.Application, error) {
	collection := r.db.Collection(ApplicationCollectionName)

	var app application.Application
	err := collection.FindOne(ctx, filter).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.NotFoundError{Resource: "loan application", ID: id.String()}
		}
		r.logger.Error("Failed to get loan application",
			"application_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get loan application: %w", err)
	}

	return &app, nil
}

// GetByApplicant retrieves all non-deleted applications owned by an
// applicant, newest first
func (r *ApplicationRepository) GetByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*application.Application, error) {
	return r.findMany(ctx, bson.M{"applicant_id": applicantID, "is_deleted": bson.M{"$ne": true}},
		bson.M{"created_at": -1})
}

// GetAll retrieves all non-deleted applications, newest first
func (r *ApplicationRepository) GetAll(ctx context.Context) ([]*application.Application, error) {
	return r.findMany(ctx, bson.M{"is_deleted": bson.M{"$ne": true}}, bson.M{"created_at": -1})
}

// GetDeleted retrieves all soft-deleted applications, most recently deleted
// first
func (r *ApplicationRepository) GetDeleted(ctx context.Context) ([]*application.Application, error) {
	return r.findMany(ctx, bson.M{"is_deleted": true}, bson.M{"deleted_at": -1})
}

func (r *ApplicationRepository) findMany(ctx context.Context, filter bson.M, sort bson.M) ([]*application.Application, error) {
	collection := r.db.Collection(ApplicationCollectionName)

	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		r.logger.Error("Failed to query loan applications", "error", err)
		return nil, fmt.Errorf("failed to query loan applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []*application.Application
	if err := cursor.All(ctx, &apps); err != nil {
		r.logger.Error("Failed to decode loan applications", "error", err)
		return nil, fmt.Errorf("failed to decode loan applications: %w", err)
	}

	return apps, nil
}

// Update commits the aggregate's pending mutation as one conditional write.
// Each aggregate method appends exactly one history entry and bumps the
// version once, so the update pushes only that entry (the history array is
// never rewritten in place) and matches on the previous version for
// optimistic locking. A missed match is either a concurrent modification or
// a missing document; the two are told apart with a follow-up lookup.
func (r *ApplicationRepository) Update(ctx context.Context, app *application.Application) error {
	collection := r.db.Collection(ApplicationCollectionName)

	filter := bson.M{"_id": app.ID, "version": app.Version - 1}
	update := bson.M{
		"$set": bson.M{
			"status":                         app.Status,
			"documents_uploaded":             app.DocumentsUploaded,
			"additional_documents_requested": app.AdditionalDocumentsRequested,
			"rejection_reason":               app.RejectionReason,
			"approval_details":               app.ApprovalDetails,
			"is_deleted":                     app.IsDeleted,
			"deleted_at":                     app.DeletedAt,
			"version":                        app.Version,
			"updated_at":                     app.UpdatedAt,
		},
		"$push": bson.M{"status_history": app.LastHistoryEntry()},
	}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("Failed to update loan application",
			"application_id", app.ID.String(),
			"error", err)
		return fmt.Errorf("failed to update loan application: %w", err)
	}

	if result.MatchedCount == 0 {
		count, countErr := collection.CountDocuments(ctx, bson.M{"_id": app.ID})
		if countErr == nil && count == 0 {
			return shared.NotFoundError{Resource: "loan application", ID: app.ID.String()}
		}
		return shared.ConflictError{Resource: "loan application", ID: app.ID.String()}
	}

	return nil
}

// HardDelete permanently removes an application. Irreversible; callers gate
// this behind the confirmation check.
func (r *ApplicationRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	collection := r.db.Collection(ApplicationCollectionName)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to hard delete loan application",
			"application_id", id.String(),
			"error", err)
		return fmt.Errorf("failed to hard delete loan application: %w", err)
	}

	if result.DeletedCount == 0 {
		return shared.NotFoundError{Resource: "loan application", ID: id.String()}
	}

	r.logger.Info("Permanently deleted loan application",
		"application_id", id.String(),
		"deleted_at", time.Now().UTC())
	return nil
}
