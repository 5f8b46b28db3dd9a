package store

import (
	"context"
	"testing"

	"freight-shipment-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryStoreCriteria(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	idA, err := s.InsertOne(ctx, models.Shipment{Vendor: "Acme Freight", Speed: 2, Owner: models.MiniUser{ID: "u1"}})
	require.NoError(t, err)
	_, err = s.InsertOne(ctx, models.Shipment{Vendor: "Globex", Speed: 7, Owner: models.MiniUser{ID: "u2"}})
	require.NoError(t, err)

	t.Run("find by id", func(t *testing.T) {
		got, err := s.FindOne(ctx, bson.M{"_id": idA})
		require.NoError(t, err)
		assert.Equal(t, "Acme Freight", got.Vendor)
	})

	t.Run("vendor regex is case-insensitive", func(t *testing.T) {
		results, err := s.Find(ctx, bson.M{"vendor": primitive.Regex{Pattern: "acme", Options: "i"}}, FindOptions{})
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("speed $gte", func(t *testing.T) {
		results, err := s.Find(ctx, bson.M{"speed": bson.M{"$gte": 5.0}}, FindOptions{})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Globex", results[0].Vendor)
	})

	t.Run("owner-scoped delete misses other owners", func(t *testing.T) {
		deleted, err := s.DeleteOne(ctx, bson.M{"_id": idA, "owner._id": "u2"})
		require.NoError(t, err)
		assert.Zero(t, deleted)

		deleted, err = s.DeleteOne(ctx, bson.M{"_id": idA, "owner._id": "u1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
	})

	t.Run("find one with no match", func(t *testing.T) {
		_, err := s.FindOne(ctx, bson.M{"_id": primitive.NewObjectID()})
		assert.ErrorIs(t, err, ErrNoDocuments)
	})
}

func TestMemoryStoreUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.InsertOne(ctx, models.Shipment{Vendor: "Acme", Speed: 2})
	require.NoError(t, err)

	t.Run("$set touches only known fields", func(t *testing.T) {
		matched, err := s.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"vendor": "New Vendor", "speed": 9.0}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), matched)

		got, err := s.FindOne(ctx, bson.M{"_id": id})
		require.NoError(t, err)
		assert.Equal(t, "New Vendor", got.Vendor)
		assert.Equal(t, 9.0, got.Speed)
	})

	t.Run("$push then $pull", func(t *testing.T) {
		msg := models.ShipmentMsg{ID: "m1", Txt: "hello", By: models.MiniUser{ID: "u1"}}
		_, err := s.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"msgs": msg}})
		require.NoError(t, err)

		got, err := s.FindOne(ctx, bson.M{"_id": id})
		require.NoError(t, err)
		require.Len(t, got.Msgs, 1)

		_, err = s.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"msgs": bson.M{"id": "m1"}}})
		require.NoError(t, err)

		got, err = s.FindOne(ctx, bson.M{"_id": id})
		require.NoError(t, err)
		assert.Empty(t, got.Msgs)
	})

	t.Run("update with no match reports zero", func(t *testing.T) {
		matched, err := s.UpdateOne(ctx, bson.M{"_id": primitive.NewObjectID()}, bson.M{"$set": bson.M{"vendor": "x"}})
		require.NoError(t, err)
		assert.Zero(t, matched)
	})
}
