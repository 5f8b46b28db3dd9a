// server/internal/risk/monitor.go
package risk

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"freight-shipment-api-server/internal/models"
	"freight-shipment-api-server/internal/shipment"
)

// Broadcaster delivers an alert payload to every connected client.
// The websocket hub satisfies this.
type Broadcaster interface {
	Broadcast(message []byte)
}

// Alert is the payload broadcast for a shipment that missed a deadline.
type Alert struct {
	Type       string    `json:"type"`
	ShipmentID string    `json:"shipmentId"`
	Vendor     string    `json:"vendor"`
	Company    string    `json:"company"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// Monitor periodically sweeps all shipments and broadcasts an alert for
// each one currently at risk. It plays the external-scheduler role the
// risk evaluator was designed for; the request path never runs it.
type Monitor struct {
	Service  *shipment.Service
	Hub      Broadcaster
	Interval time.Duration
}

func NewMonitor(service *shipment.Service, hub Broadcaster, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Monitor{Service: service, Hub: hub, Interval: interval}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	log.Printf("Risk monitor started, checking every %s", m.Interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("Risk monitor stopped")
			return
		case <-ticker.C:
			m.Sweep(ctx, time.Now())
		}
	}
}

// Sweep evaluates every shipment once and broadcasts alerts for the
// at-risk ones. Shipments with incomplete scheduling data are skipped.
func (m *Monitor) Sweep(ctx context.Context, now time.Time) {
	shipments, err := m.Service.Query(ctx, models.ShipmentFilter{})
	if err != nil {
		log.Printf("Risk sweep failed to query shipments: %v", err)
		return
	}

	for _, s := range shipments {
		atRisk, err := shipment.IsAtRisk(s, now)
		if err != nil || !atRisk {
			continue
		}

		payload, err := json.Marshal(Alert{
			Type:       "shipment-at-risk",
			ShipmentID: s.ID.Hex(),
			Vendor:     s.Vendor,
			Company:    s.Company,
			CheckedAt:  now,
		})
		if err != nil {
			continue
		}
		m.Hub.Broadcast(payload)
	}
}
