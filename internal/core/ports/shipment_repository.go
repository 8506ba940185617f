package ports

import (
	"context"
	"time"

	"github.com/cargotrack/tracking-api/internal/core/domain"
)

// ShipmentRepository defines persistence operations for shipments.
// Implementations enforce tracking id uniqueness and stamp
// CreatedAt/UpdatedAt on write.
type ShipmentRepository interface {
	// Create inserts a new shipment. Returns domain.ErrDuplicateTracking
	// when the tracking id is already taken.
	Create(ctx context.Context, s *domain.Shipment) error
	// FindByID retrieves a shipment by primary key. A syntactically
	// invalid id is reported as domain.ErrShipmentNotFound, never as a
	// hard failure, so callers can fall back to a tracking id lookup.
	FindByID(ctx context.Context, id string) (*domain.Shipment, error)
	FindByTrackingID(ctx context.Context, trackingID string) (*domain.Shipment, error)
	Update(ctx context.Context, s *domain.Shipment) error
	// List returns all shipments, newest first.
	List(ctx context.Context) ([]*domain.Shipment, error)
	// FindOverdue returns in-transit shipments whose estimated ETA has
	// passed without a delivery.
	FindOverdue(ctx context.Context, now time.Time) ([]*domain.Shipment, error)
}
