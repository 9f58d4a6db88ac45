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

	"github.com/clearbridge-loan-origination/internal/domain/restoration"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

const (
	// RestorationCollectionName is the name of the restoration request
	// collection in MongoDB
	RestorationCollectionName = "restoration_requests"
)

// RestorationRepository implements the restoration.Repository interface
// for MongoDB
type RestorationRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewRestorationRepository creates a new MongoDB restoration request repository
func NewRestorationRepository(logger *slog.Logger, db *mongo.Database) restoration.Repository {
	return &RestorationRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new restoration request
func (r *RestorationRepository) Create(ctx context.Context, req *restoration.Request) error {
	collection := r.db.Collection(RestorationCollectionName)

	_, err := collection.InsertOne(ctx, req)
	if err != nil {
		r.logger.Error("Failed to create restoration request",
			"request_id", req.ID.String(),
			"application_id", req.ApplicationID.String(),
			"error", err)
		return fmt.Errorf("failed to create restoration request: %w", err)
	}

	return nil
}

// GetByID retrieves a restoration request by its ID
func (r *RestorationRepository) GetByID(ctx context.Context, id uuid.UUID) (*restoration.Request, error) {
	collection := r.db.Collection(RestorationCollectionName)

	var req restoration.Request
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.NotFoundError{Resource: "restoration request", ID: id.String()}
		}
		r.logger.Error("Failed to get restoration request",
			"request_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get restoration request: %w", err)
	}

	return &req, nil
}

// GetPendingByApplication returns the pending request for an application,
// or nil when none exists
func (r *RestorationRepository) GetPendingByApplication(ctx context.Context, applicationID uuid.UUID) (*restoration.Request, error) {
	collection := r.db.Collection(RestorationCollectionName)

	var req restoration.Request
	err := collection.FindOne(ctx, bson.M{
		"application_id": applicationID,
		"status":         restoration.StatusPending,
	}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("Failed to get pending restoration request",
			"application_id", applicationID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get pending restoration request: %w", err)
	}

	return &req, nil
}

// GetByRequester retrieves all requests submitted by a user, newest first
func (r *RestorationRepository) GetByRequester(ctx context.Context, requestedBy uuid.UUID) ([]*restoration.Request, error) {
	return r.findMany(ctx, bson.M{"requested_by": requestedBy})
}

// GetAll lists requests, optionally filtered by status, newest first
func (r *RestorationRepository) GetAll(ctx context.Context, status restoration.Status) ([]*restoration.Request, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.findMany(ctx, filter)
}

func (r *RestorationRepository) findMany(ctx context.Context, filter bson.M) ([]*restoration.Request, error) {
	collection := r.db.Collection(RestorationCollectionName)

	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		r.logger.Error("Failed to query restoration requests", "error", err)
		return nil, fmt.Errorf("failed to query restoration requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []*restoration.Request
	if err := cursor.All(ctx, &reqs); err != nil {
		r.logger.Error("Failed to decode restoration requests", "error", err)
		return nil, fmt.Errorf("failed to decode restoration requests: %w", err)
	}

	return reqs, nil
}

// Update persists a reviewed request. The filter matches on the pending
// status so two admins deciding the same request concurrently cannot both
// succeed.
func (r *RestorationRepository) Update(ctx context.Context, req *restoration.Request) error {
	collection := r.db.Collection(RestorationCollectionName)

	filter := bson.M{"_id": req.ID, "status": restoration.StatusPending}
	update := bson.M{
		"$set": bson.M{
			"status":       req.Status,
			"reviewed_by":  req.ReviewedBy,
			"reviewed_at":  req.ReviewedAt,
			"review_notes": req.ReviewNotes,
			"updated_at":   req.UpdatedAt,
		},
	}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("Failed to update restoration request",
			"request_id", req.ID.String(),
			"error", err)
		return fmt.Errorf("failed to update restoration request: %w", err)
	}

	if result.MatchedCount == 0 {
		count, countErr := collection.CountDocuments(ctx, bson.M{"_id": req.ID})
		if countErr == nil && count == 0 {
			return shared.NotFoundError{Resource: "restoration request", ID: req.ID.String()}
		}
		return shared.ConflictError{Resource: "restoration request", ID: req.ID.String()}
	}

	return nil
}

// DeleteByApplication removes all restoration requests for an application.
// Part of the permanent delete cascade.
func (r *RestorationRepository) DeleteByApplication(ctx context.Context, applicationID uuid.UUID) error {
	collection := r.db.Collection(RestorationCollectionName)

	_, err := collection.DeleteMany(ctx, bson.M{"application_id": applicationID})
	if err != nil {
		r.logger.Error("Failed to delete restoration requests for application",
			"application_id", applicationID.String(),
			"error", err)
		return fmt.Errorf("failed to delete restoration requests: %w", err)
	}

	return nil
}
