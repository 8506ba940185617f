package ports

import (
	"context"
	"time"

	"github.com/cargotrack/tracking-api/internal/core/domain"
)

// LocationInput holds a caller-supplied place. Coordinates are optional
// and never required for core logic to work.
type LocationInput struct {
	Name      string
	Latitude  *float64
	Longitude *float64
}

// CreateShipmentInput carries all data needed to create a new shipment.
// Status is optional; when empty the shipment starts pending.
type CreateShipmentInput struct {
	ContainerID   string
	Origin        LocationInput
	Destination   LocationInput
	Intermediates []LocationInput
	Status        domain.Status
	Notes         string
}

// LocationUpdateInput carries a reported position for a shipment. ID is
// resolved first as a primary key, then as a tracking id.
type LocationUpdateInput struct {
	ID        string
	Name      string
	Latitude  *float64
	Longitude *float64
}

// ETAResult is the read-only ETA view: recomputed on demand, never
// persisted back.
type ETAResult struct {
	TrackingID   string
	Status       domain.Status
	EstimatedETA *time.Time
}

// ShipmentService defines use-case operations for shipments.
type ShipmentService interface {
	CreateShipment(ctx context.Context, input CreateShipmentInput) (*domain.Shipment, error)
	GetShipment(ctx context.Context, id string) (*domain.Shipment, error)
	RecordLocationUpdate(ctx context.Context, input LocationUpdateInput) (*domain.Shipment, error)
	GetETA(ctx context.Context, id string) (*ETAResult, error)
	ListShipments(ctx context.Context) ([]*domain.Shipment, error)
	// SweepOverdue flags in-transit shipments past their ETA as delayed
	// and returns how many were flagged.
	SweepOverdue(ctx context.Context) (int, error)
}
