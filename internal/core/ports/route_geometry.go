package ports

import (
	"context"

	"github.com/cargotrack/tracking-api/internal/core/domain"
)

// RouteGeometryGateway supplies decorative path geometry from an
// external road-routing provider. Geometry is best-effort: a nil
// result with a nil error means the provider had nothing usable, and
// callers must proceed without it.
type RouteGeometryGateway interface {
	// GetRouteGeometry resolves a LineString through the ordered
	// coordinate-bearing waypoints. Fewer than two such waypoints
	// yields nil without contacting the provider.
	GetRouteGeometry(ctx context.Context, waypoints []domain.Location) (*domain.LineString, error)
}
