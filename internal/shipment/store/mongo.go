// server/internal/shipment/store/mongo.go
package store

import (
	"context"

	"freight-shipment-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "shipment"

// MongoStore backs the adapter with a MongoDB collection.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(collectionName)}
}

func (s *MongoStore) Find(ctx context.Context, criteria bson.M, opts FindOptions) ([]models.Shipment, error) {
	findOpts := options.Find()
	if len(opts.Sort) > 0 {
		findOpts.SetSort(opts.Sort)
	}
	if opts.Skip != nil {
		findOpts.SetSkip(*opts.Skip)
	}
	if opts.Limit != nil {
		findOpts.SetLimit(*opts.Limit)
	}

	cursor, err := s.collection.Find(ctx, criteria, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shipments []models.Shipment
	if err = cursor.All(ctx, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

func (s *MongoStore) FindOne(ctx context.Context, criteria bson.M) (models.Shipment, error) {
	var shipment models.Shipment
	err := s.collection.FindOne(ctx, criteria).Decode(&shipment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Shipment{}, ErrNoDocuments
		}
		return models.Shipment{}, err
	}
	return shipment, nil
}

func (s *MongoStore) InsertOne(ctx context.Context, shipment models.Shipment) (primitive.ObjectID, error) {
	result, err := s.collection.InsertOne(ctx, shipment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := result.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (s *MongoStore) UpdateOne(ctx context.Context, criteria bson.M, update bson.M) (int64, error) {
	result, err := s.collection.UpdateOne(ctx, criteria, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (s *MongoStore) DeleteOne(ctx context.Context, criteria bson.M) (int64, error) {
	result, err := s.collection.DeleteOne(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
