// server/internal/shipment/store/memory.go
package store

import (
	"context"
	"regexp"
	"sort"
	"sync"

	"freight-shipment-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps shipments in an in-memory slice, in insertion order.
// It interprets the same criteria/update documents the service sends to
// MongoDB, which makes the service testable without a running database.
type MemoryStore struct {
	mu        sync.RWMutex
	shipments []models.Shipment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Find(ctx context.Context, criteria bson.M, opts FindOptions) ([]models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Shipment
	for _, shipment := range s.shipments {
		if matches(shipment, criteria) {
			matched = append(matched, clone(shipment))
		}
	}

	if len(opts.Sort) > 0 {
		field := opts.Sort[0].Key
		dir := 1
		if d, ok := opts.Sort[0].Value.(int); ok && d < 0 {
			dir = -1
		}
		sort.SliceStable(matched, func(i, j int) bool {
			if dir < 0 {
				return less(matched[j], matched[i], field)
			}
			return less(matched[i], matched[j], field)
		})
	}

	if opts.Skip != nil {
		skip := int(*opts.Skip)
		if skip > len(matched) {
			skip = len(matched)
		}
		matched = matched[skip:]
	}
	if opts.Limit != nil && int(*opts.Limit) < len(matched) {
		matched = matched[:*opts.Limit]
	}
	return matched, nil
}

func (s *MemoryStore) FindOne(ctx context.Context, criteria bson.M) (models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, shipment := range s.shipments {
		if matches(shipment, criteria) {
			return clone(shipment), nil
		}
	}
	return models.Shipment{}, ErrNoDocuments
}

func (s *MemoryStore) InsertOne(ctx context.Context, shipment models.Shipment) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shipment.ID.IsZero() {
		shipment.ID = primitive.NewObjectID()
	}
	s.shipments = append(s.shipments, clone(shipment))
	return shipment.ID, nil
}

func (s *MemoryStore) UpdateOne(ctx context.Context, criteria bson.M, update bson.M) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.shipments {
		if !matches(s.shipments[i], criteria) {
			continue
		}
		applyUpdate(&s.shipments[i], update)
		return 1, nil
	}
	return 0, nil
}

func (s *MemoryStore) DeleteOne(ctx context.Context, criteria bson.M) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.shipments {
		if matches(s.shipments[i], criteria) {
			s.shipments = append(s.shipments[:i], s.shipments[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// matches interprets the criteria subset the service emits: _id equality,
// owner._id equality, vendor regex and speed $gte.
func matches(s models.Shipment, criteria bson.M) bool {
	for key, want := range criteria {
		switch key {
		case "_id":
			id, ok := want.(primitive.ObjectID)
			if !ok || s.ID != id {
				return false
			}
		case "owner._id":
			ownerID, ok := want.(string)
			if !ok || s.Owner.ID != ownerID {
				return false
			}
		case "vendor":
			rx, ok := want.(primitive.Regex)
			if !ok {
				return false
			}
			re, err := regexp.Compile("(?" + rx.Options + ")" + rx.Pattern)
			if err != nil || !re.MatchString(s.Vendor) {
				return false
			}
		case "speed":
			cond, ok := want.(bson.M)
			if !ok {
				return false
			}
			min, ok := cond["$gte"].(float64)
			if !ok || s.Speed < min {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func applyUpdate(s *models.Shipment, update bson.M) {
	if set, ok := update["$set"].(bson.M); ok {
		if vendor, ok := set["vendor"].(string); ok {
			s.Vendor = vendor
		}
		if speed, ok := set["speed"].(float64); ok {
			s.Speed = speed
		}
		if url, ok := set["deliveryPhotoUrl"].(string); ok {
			s.DeliveryPhotoURL = url
		}
	}
	if push, ok := update["$push"].(bson.M); ok {
		if msg, ok := push["msgs"].(models.ShipmentMsg); ok {
			s.Msgs = append(s.Msgs, msg)
		}
	}
	if pull, ok := update["$pull"].(bson.M); ok {
		if cond, ok := pull["msgs"].(bson.M); ok {
			if msgID, ok := cond["id"].(string); ok {
				kept := s.Msgs[:0]
				for _, m := range s.Msgs {
					if m.ID != msgID {
						kept = append(kept, m)
					}
				}
				s.Msgs = kept
			}
		}
	}
}

func less(a, b models.Shipment, field string) bool {
	switch field {
	case "speed":
		return a.Speed < b.Speed
	case "vendor":
		return a.Vendor < b.Vendor
	case "company":
		return a.Company < b.Company
	case "original_eta":
		return a.OriginalETA.Before(b.OriginalETA)
	default:
		return false
	}
}

func clone(s models.Shipment) models.Shipment {
	c := s
	c.Msgs = append([]models.ShipmentMsg(nil), s.Msgs...)
	return c
}
