// server/internal/shipment/filter.go
package shipment

import (
	"freight-shipment-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageSize is the number of shipments returned per page when a page
// index is supplied; without one the full matching set is returned.
const PageSize = 3

func buildCriteria(filter models.ShipmentFilter) bson.M {
	criteria := bson.M{}
	if filter.Txt != "" {
		criteria["vendor"] = primitive.Regex{Pattern: filter.Txt, Options: "i"}
	}
	if filter.MinSpeed > 0 {
		criteria["speed"] = bson.M{"$gte": filter.MinSpeed}
	}
	return criteria
}

func buildSort(filter models.ShipmentFilter) bson.D {
	if filter.SortField == "" {
		return bson.D{}
	}
	dir := 1
	if filter.SortDir < 0 {
		dir = -1
	}
	return bson.D{{Key: filter.SortField, Value: dir}}
}
