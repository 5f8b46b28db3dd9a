// server/internal/shipment/store/store.go
package store

import (
	"context"
	"errors"

	"freight-shipment-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoDocuments is returned by FindOne when nothing matches the criteria.
var ErrNoDocuments = errors.New("no documents in result")

// FindOptions carries the ordering and pagination for a Find call.
type FindOptions struct {
	Sort  bson.D
	Skip  *int64
	Limit *int64
}

// Store is the record-store adapter for the shipment collection.
// Criteria and update documents use the MongoDB operator shape
// ($set / $push / $pull / $gte) regardless of backend, so the service
// builds them once and each backend interprets them.
type Store interface {
	Find(ctx context.Context, criteria bson.M, opts FindOptions) ([]models.Shipment, error)
	FindOne(ctx context.Context, criteria bson.M) (models.Shipment, error)
	InsertOne(ctx context.Context, s models.Shipment) (primitive.ObjectID, error)
	// UpdateOne applies an operator document to the first match and
	// returns the matched count.
	UpdateOne(ctx context.Context, criteria bson.M, update bson.M) (int64, error)
	// DeleteOne removes the first match and returns the deleted count.
	DeleteOne(ctx context.Context, criteria bson.M) (int64, error)
}
