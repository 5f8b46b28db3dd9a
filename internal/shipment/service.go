// server/internal/shipment/service.go
package shipment

import (
	"context"
	"log"

	"freight-shipment-api-server/internal/models"
	"freight-shipment-api-server/internal/shipment/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service implements the shipment lifecycle over a record store.
// Every operation takes the requester explicitly; there is no ambient
// request identity, so operations stay concurrency-safe and testable.
type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Query returns the shipments matching the filter, ordered and paginated
// per the filter options. CreatedAt is derived from each document's id.
func (s *Service) Query(ctx context.Context, filter models.ShipmentFilter) ([]models.Shipment, error) {
	criteria := buildCriteria(filter)
	opts := store.FindOptions{Sort: buildSort(filter)}

	if filter.PageIdx != nil {
		skip := int64(*filter.PageIdx * PageSize)
		limit := int64(PageSize)
		opts.Skip = &skip
		opts.Limit = &limit
	}

	shipments, err := s.store.Find(ctx, criteria, opts)
	if err != nil {
		log.Printf("cannot find shipments: %v", err)
		return nil, storeErr("find", err)
	}
	for i := range shipments {
		shipments[i].CreatedAt = shipments[i].ID.Timestamp()
	}
	return shipments, nil
}

// GetByID fetches one shipment and stamps CreatedAt from the ObjectID's
// embedded creation time.
func (s *Service) GetByID(ctx context.Context, shipmentID string) (models.Shipment, error) {
	oid, err := primitive.ObjectIDFromHex(shipmentID)
	if err != nil {
		return models.Shipment{}, ErrInvalidID
	}

	shipment, err := s.store.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		if err == store.ErrNoDocuments {
			return models.Shipment{}, ErrNotFound
		}
		log.Printf("while finding shipment %s: %v", shipmentID, err)
		return models.Shipment{}, storeErr("findOne", err)
	}

	shipment.CreatedAt = shipment.ID.Timestamp()
	return shipment, nil
}

// Add persists a new shipment owned by the requester and returns it with
// its assigned id.
func (s *Service) Add(ctx context.Context, shipment models.Shipment, requester models.MiniUser) (models.Shipment, error) {
	shipment.Owner = requester

	oid, err := s.store.InsertOne(ctx, shipment)
	if err != nil {
		log.Printf("cannot insert shipment: %v", err)
		return models.Shipment{}, storeErr("insertOne", err)
	}

	shipment.ID = oid
	shipment.CreatedAt = oid.Timestamp()
	return shipment, nil
}

// Update persists only vendor and speed; every other field is immutable
// through this path. The requester must be the owner or an admin. The
// returned record echoes the input, not the merged stored document.
func (s *Service) Update(ctx context.Context, shipment models.Shipment, requester models.MiniUser) (models.Shipment, error) {
	if shipment.ID.IsZero() {
		return models.Shipment{}, ErrInvalidID
	}

	current, err := s.GetByID(ctx, shipment.ID.Hex())
	if err != nil {
		return models.Shipment{}, err
	}
	if !CanModify(requester, current.Owner) {
		return models.Shipment{}, ErrForbidden
	}

	criteria := bson.M{"_id": shipment.ID}
	toSave := bson.M{"vendor": shipment.Vendor, "speed": shipment.Speed}

	if _, err := s.store.UpdateOne(ctx, criteria, bson.M{"$set": toSave}); err != nil {
		log.Printf("cannot update shipment %s: %v", shipment.ID.Hex(), err)
		return models.Shipment{}, storeErr("updateOne", err)
	}
	return shipment, nil
}

// Remove deletes a shipment by id. For non-admins the ownership check is
// part of the delete predicate itself, so a missing shipment and someone
// else's shipment are indistinguishable: both delete zero documents and
// surface as ErrForbidden.
func (s *Service) Remove(ctx context.Context, shipmentID string, requester models.MiniUser) (string, error) {
	oid, err := primitive.ObjectIDFromHex(shipmentID)
	if err != nil {
		return "", ErrInvalidID
	}

	criteria := bson.M{"_id": oid}
	if !requester.IsAdmin {
		criteria["owner._id"] = requester.ID
	}

	deleted, err := s.store.DeleteOne(ctx, criteria)
	if err != nil {
		log.Printf("cannot remove shipment %s: %v", shipmentID, err)
		return "", storeErr("deleteOne", err)
	}
	if deleted == 0 {
		return "", ErrForbidden
	}
	return shipmentID, nil
}

// AddMsg appends a message to the shipment's msgs array and returns it
// with its generated id.
func (s *Service) AddMsg(ctx context.Context, shipmentID string, txt string, author models.MiniUser) (models.ShipmentMsg, error) {
	oid, err := primitive.ObjectIDFromHex(shipmentID)
	if err != nil {
		return models.ShipmentMsg{}, ErrInvalidID
	}

	msg := models.ShipmentMsg{
		ID:  uuid.New().String(),
		Txt: txt,
		By:  author,
	}

	matched, err := s.store.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"msgs": msg}})
	if err != nil {
		log.Printf("cannot add shipment msg %s: %v", shipmentID, err)
		return models.ShipmentMsg{}, storeErr("updateOne", err)
	}
	if matched == 0 {
		return models.ShipmentMsg{}, ErrNotFound
	}
	return msg, nil
}

// RemoveMsg pulls the message with the given id from the shipment. It is
// idempotent from the caller's side: removing an absent msgId succeeds
// and returns the id unchanged.
func (s *Service) RemoveMsg(ctx context.Context, shipmentID string, msgID string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(shipmentID)
	if err != nil {
		return "", ErrInvalidID
	}

	matched, err := s.store.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$pull": bson.M{"msgs": bson.M{"id": msgID}}})
	if err != nil {
		log.Printf("cannot remove shipment msg %s: %v", shipmentID, err)
		return "", storeErr("updateOne", err)
	}
	if matched == 0 {
		return "", ErrNotFound
	}
	return msgID, nil
}

// SetDeliveryPhoto records the proof-of-delivery photo URL on a shipment.
func (s *Service) SetDeliveryPhoto(ctx context.Context, shipmentID string, url string) error {
	oid, err := primitive.ObjectIDFromHex(shipmentID)
	if err != nil {
		return ErrInvalidID
	}

	matched, err := s.store.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"deliveryPhotoUrl": url}})
	if err != nil {
		log.Printf("cannot set delivery photo %s: %v", shipmentID, err)
		return storeErr("updateOne", err)
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}
