// server/internal/shipment/risk.go
package shipment

import (
	"fmt"
	"time"

	"freight-shipment-api-server/internal/models"
)

// Lead time each carrier needs between "order ready" and "transport begins".
const defaultReadyLeadTime = 18 * time.Hour

var readyLeadTimes = map[string]time.Duration{
	"Acme Corp":       12 * time.Hour,
	"Beta Industries": 8 * time.Hour,
	"Gamma Supplies":  6 * time.Hour,
}

// ReadyLeadTime maps a carrier name to its ready-to-transport lead time.
// Unknown carriers get the 18h default.
func ReadyLeadTime(company string) time.Duration {
	if d, ok := readyLeadTimes[company]; ok {
		return d
	}
	return defaultReadyLeadTime
}

// TransportDeadline is the latest moment transport can begin and still
// make the original ETA.
func TransportDeadline(s models.Shipment) time.Time {
	travel := time.Duration(s.EstimatedTravelTimeInHours * float64(time.Hour))
	return s.OriginalETA.Add(-travel)
}

// ReadyDeadline is the latest moment the order can become ready, given
// the carrier's lead time before transport.
func ReadyDeadline(s models.Shipment) time.Time {
	return TransportDeadline(s).Add(-ReadyLeadTime(s.Company))
}

// IsAtRisk reports whether a shipment has missed either of its deadlines
// as of now: transport has not begun past the transport deadline, or the
// order is not ready past the ready deadline. Pure function, safe to call
// from a scheduler outside the request path.
func IsAtRisk(s models.Shipment, now time.Time) (bool, error) {
	if s.OriginalETA.IsZero() {
		return false, fmt.Errorf("%w: original_eta is not set", ErrValidation)
	}
	if s.EstimatedTravelTimeInHours <= 0 {
		return false, fmt.Errorf("%w: estimated_travel_time_in_hours must be positive", ErrValidation)
	}

	if !s.ShipmentOnItsWay && !now.Before(TransportDeadline(s)) {
		return true, nil
	}
	if !s.OrderReadyToShip && !now.Before(ReadyDeadline(s)) {
		return true, nil
	}
	return false, nil
}
