// server/internal/shipment/errors.go
package shipment

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the lifecycle service. Handlers map these to
// HTTP statuses; everything else is a store failure.
var (
	ErrInvalidID  = errors.New("invalid shipment id")
	ErrNotFound   = errors.New("shipment not found")
	ErrForbidden  = errors.New("not your shipment")
	ErrValidation = errors.New("invalid shipment data")
)

// storeErr wraps an adapter failure so callers can tell connectivity
// problems apart from domain rejections.
func storeErr(op string, err error) error {
	return fmt.Errorf("shipment store: %s: %w", op, err)
}
