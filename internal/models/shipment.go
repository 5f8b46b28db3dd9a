// server/internal/models/shipment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MiniUser is the snapshot of a user embedded in a shipment document
// (as the owner or the author of a message).
type MiniUser struct {
	ID       string `bson:"_id" json:"_id"`
	Fullname string `bson:"fullname" json:"fullname"`
	IsAdmin  bool   `bson:"isAdmin,omitempty" json:"isAdmin,omitempty"`
}

// ShipmentMsg is a message attached to a shipment. Messages live inside
// their parent document only; the id is generated when the message is added.
type ShipmentMsg struct {
	ID  string   `bson:"id" json:"id"`
	Txt string   `bson:"txt" json:"txt"`
	By  MiniUser `bson:"by" json:"by"`
}

type Shipment struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Vendor string             `bson:"vendor" json:"vendor"`
	Speed  float64            `bson:"speed" json:"speed"`
	Owner  MiniUser           `bson:"owner" json:"owner"`
	Msgs   []ShipmentMsg      `bson:"msgs,omitempty" json:"msgs,omitempty"`

	// Scheduling fields used by the risk evaluation.
	Company                    string    `bson:"company" json:"company"` // carrier name, e.g. "Acme Corp"
	OriginalETA                time.Time `bson:"original_eta" json:"original_eta"`
	EstimatedTravelTimeInHours float64   `bson:"estimated_travel_time_in_hours" json:"estimated_travel_time_in_hours"`
	ShipmentOnItsWay           bool      `bson:"shipment_on_its_way" json:"shipment_on_its_way"`
	OrderReadyToShip           bool      `bson:"order_ready_to_ship" json:"order_ready_to_ship"`

	DeliveryPhotoURL string `bson:"deliveryPhotoUrl,omitempty" json:"deliveryPhotoUrl,omitempty"`

	// CreatedAt is not persisted: it is recomputed from the ObjectID's
	// embedded timestamp on every read so it can never drift from the id.
	CreatedAt time.Time `bson:"-" json:"createdAt,omitempty"`
}

// ShipmentFilter carries the query options accepted by the list endpoint.
type ShipmentFilter struct {
	Txt       string
	MinSpeed  float64
	SortField string
	SortDir   int
	PageIdx   *int
}
