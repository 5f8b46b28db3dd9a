// server/internal/shipment/authorize.go
package shipment

import "freight-shipment-api-server/internal/models"

// CanModify decides whether a requester may change a shipment:
// admins always may, everyone else only their own shipments.
// The delete path folds the same rule into its store predicate; the two
// must agree for equivalent inputs.
func CanModify(requester models.MiniUser, owner models.MiniUser) bool {
	if requester.IsAdmin {
		return true
	}
	return requester.ID == owner.ID
}
