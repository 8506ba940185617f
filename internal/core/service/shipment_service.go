package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargotrack/tracking-api/internal/core/domain"
	"github.com/cargotrack/tracking-api/internal/core/ports"
	"github.com/cargotrack/tracking-api/internal/pkg/metrics"
)

const (
	// maxTrackingAttempts bounds regeneration when the unique index
	// rejects a freshly generated tracking id.
	maxTrackingAttempts = 3

	defaultGeometryTimeout = 3 * time.Second
)

// PingDedup abstracts the idempotency store (Redis) used to suppress
// repeated identical location reports.
type PingDedup interface {
	IsDuplicate(ctx context.Context, trackingID, locationName string, ts time.Time) (bool, error)
	Mark(ctx context.Context, trackingID, locationName string, ts time.Time) error
}

// ShipmentService owns the shipment aggregate: every mutating operation
// re-reconciles the route and re-derives the ETA so stored derived
// fields never go stale relative to their inputs.
//
// Concurrent updates to the same shipment are not coordinated; the last
// write wins at the repository.
type ShipmentService struct {
	repo            ports.ShipmentRepository
	geometry        ports.RouteGeometryGateway
	idgen           TrackingIDGenerator
	dedup           PingDedup
	now             func() time.Time
	geometryTimeout time.Duration
	logger          zerolog.Logger
}

// NewShipmentService wires the aggregate. geometry and dedup may be nil:
// both concerns are best-effort and the service degrades without them.
func NewShipmentService(
	repo ports.ShipmentRepository,
	geometry ports.RouteGeometryGateway,
	idgen TrackingIDGenerator,
	dedup PingDedup,
	logger zerolog.Logger,
) *ShipmentService {
	if idgen == nil {
		idgen = NewTrackingIDGenerator()
	}
	return &ShipmentService{
		repo:            repo,
		geometry:        geometry,
		idgen:           idgen,
		dedup:           dedup,
		now:             time.Now,
		geometryTimeout: defaultGeometryTimeout,
		logger:          logger,
	}
}

// SetGeometryTimeout overrides the per-call budget for geometry lookups.
func (s *ShipmentService) SetGeometryTimeout(d time.Duration) {
	if d > 0 {
		s.geometryTimeout = d
	}
}

// CreateShipment validates input, reconciles the initial route, derives
// the ETA, fetches decorative geometry best-effort, and persists.
func (s *ShipmentService) CreateShipment(ctx context.Context, in ports.CreateShipmentInput) (*domain.Shipment, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	origin := toLocation(in.Origin)
	destination := toLocation(in.Destination)
	intermediates := make([]domain.Location, 0, len(in.Intermediates))
	for _, wp := range in.Intermediates {
		intermediates = append(intermediates, toLocation(wp))
	}

	current := origin
	current.Timestamp = &now

	route := domain.ReconcileRoute(&origin, &destination, intermediates)

	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}

	shipment := &domain.Shipment{
		ContainerID:     strings.TrimSpace(in.ContainerID),
		Origin:          origin,
		Destination:     destination,
		Route:           route,
		CurrentLocation: &current,
		Status:          status,
		Notes:           in.Notes,
	}
	shipment.EstimatedETA = domain.EstimateETA(route, shipment.CurrentLocation, shipment.Status, nil, now)
	shipment.DetailedRouteGeometry = s.fetchGeometry(ctx, route)

	for attempt := 1; ; attempt++ {
		shipment.TrackingID = s.idgen.Generate()
		err := s.repo.Create(ctx, shipment)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateTracking) {
			s.logger.Error().Err(err).Msg("failed to create shipment")
			return nil, err
		}
		if attempt == maxTrackingAttempts {
			s.logger.Error().Int("attempts", attempt).Msg("tracking id generation exhausted")
			return nil, fmt.Errorf("create shipment: %w", domain.ErrDuplicateTracking)
		}
		s.logger.Warn().Str("tracking_id", shipment.TrackingID).Msg("tracking id collision, regenerating")
	}

	geometryLabel := "absent"
	if shipment.DetailedRouteGeometry != nil {
		geometryLabel = "present"
	}
	metrics.ShipmentsCreatedTotal.WithLabelValues(geometryLabel).Inc()

	s.logger.Info().
		Str("tracking_id", shipment.TrackingID).
		Str("container_id", shipment.ContainerID).
		Int("route_points", len(shipment.Route)).
		Msg("shipment created")

	return shipment, nil
}

// RecordLocationUpdate applies a reported position: transition policy,
// route re-reconciliation, and ETA re-derivation, then persists.
func (s *ShipmentService) RecordLocationUpdate(ctx context.Context, in ports.LocationUpdateInput) (*domain.Shipment, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: location name is required", domain.ErrValidation)
	}

	started := s.now()

	shipment, err := s.lookup(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()

	// A delivered shipment rejects every further report, including
	// retransmissions the dedup store would otherwise swallow.
	if shipment.Status == domain.StatusDelivered {
		return nil, fmt.Errorf("record location update: %w", domain.ErrShipmentDelivered)
	}

	if s.dedup != nil {
		isDup, dedupErr := s.dedup.IsDuplicate(ctx, shipment.TrackingID, name, now)
		if dedupErr != nil {
			s.logger.Warn().Err(dedupErr).Str("tracking_id", shipment.TrackingID).Msg("dedup check failed, processing anyway")
		} else if isDup {
			metrics.UpdatesDedupTotal.WithLabelValues("hit").Inc()
			s.logger.Debug().Str("tracking_id", shipment.TrackingID).Str("location", name).Msg("duplicate location ping skipped")
			return shipment, nil
		} else {
			metrics.UpdatesDedupTotal.WithLabelValues("miss").Inc()
		}
	}

	next, deliveredNow, err := domain.NextStatus(shipment.Status, shipment.Destination.Name, name)
	if err != nil {
		metrics.LocationUpdateDuration.WithLabelValues("error").Observe(s.now().Sub(started).Seconds())
		return nil, fmt.Errorf("record location update: %w", err)
	}

	shipment.CurrentLocation = &domain.Location{
		Name:      name,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Timestamp: &now,
	}
	shipment.Status = next
	// The stored route doubles as the intermediate set: anchors are
	// re-applied and duplicates folded by reconciliation.
	shipment.Route = domain.ReconcileRoute(&shipment.Origin, &shipment.Destination, shipment.Route)

	if deliveredNow {
		shipment.ActualDeliveryDate = &now
		shipment.EstimatedETA = nil
	} else {
		shipment.EstimatedETA = domain.EstimateETA(shipment.Route, shipment.CurrentLocation, shipment.Status, shipment.EstimatedETA, now)
	}

	if s.dedup != nil {
		// Mark before persisting so a retried request is not applied twice.
		if markErr := s.dedup.Mark(ctx, shipment.TrackingID, name, now); markErr != nil {
			s.logger.Warn().Err(markErr).Str("tracking_id", shipment.TrackingID).Msg("failed to set dedup key")
		}
	}

	if err := s.repo.Update(ctx, shipment); err != nil {
		metrics.LocationUpdateDuration.WithLabelValues("error").Observe(s.now().Sub(started).Seconds())
		s.logger.Error().Err(err).Str("tracking_id", shipment.TrackingID).Msg("failed to persist location update")
		return nil, err
	}

	metrics.LocationUpdatesTotal.WithLabelValues(string(shipment.Status)).Inc()
	metrics.LocationUpdateDuration.WithLabelValues(string(shipment.Status)).Observe(s.now().Sub(started).Seconds())

	s.logger.Info().
		Str("tracking_id", shipment.TrackingID).
		Str("location", name).
		Str("status", string(shipment.Status)).
		Bool("delivered", deliveredNow).
		Msg("location update applied")

	return shipment, nil
}

// GetShipment resolves a shipment by primary key or tracking id.
func (s *ShipmentService) GetShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	return s.lookup(ctx, id)
}

// GetETA recomputes the ETA from the stored route, current location,
// and status. The refreshed value is returned only, never persisted.
func (s *ShipmentService) GetETA(ctx context.Context, id string) (*ports.ETAResult, error) {
	shipment, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	eta := domain.EstimateETA(shipment.Route, shipment.CurrentLocation, shipment.Status, shipment.EstimatedETA, now)
	return &ports.ETAResult{
		TrackingID:   shipment.TrackingID,
		Status:       shipment.Status,
		EstimatedETA: eta,
	}, nil
}

// ListShipments returns all shipments, newest first.
func (s *ShipmentService) ListShipments(ctx context.Context) ([]*domain.Shipment, error) {
	return s.repo.List(ctx)
}

// SweepOverdue flags in-transit shipments whose ETA passed without a
// delivery as delayed. Delayed is sticky until the shipment reaches its
// destination.
func (s *ShipmentService) SweepOverdue(ctx context.Context) (int, error) {
	now := s.now().UTC()
	overdue, err := s.repo.FindOverdue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("sweep overdue: %w", err)
	}

	flagged := 0
	for _, shipment := range overdue {
		shipment.Status = domain.StatusDelayed
		if err := s.repo.Update(ctx, shipment); err != nil {
			s.logger.Error().Err(err).Str("tracking_id", shipment.TrackingID).Msg("failed to flag overdue shipment")
			continue
		}
		flagged++
	}

	if flagged > 0 {
		metrics.ShipmentsDelayedTotal.Add(float64(flagged))
		s.logger.Info().Int("flagged", flagged).Msg("overdue shipments marked delayed")
	}
	return flagged, nil
}

// lookup resolves an identifier first as a primary key, then as a
// tracking id. A malformed primary key is "not found", not an error.
func (s *ShipmentService) lookup(ctx context.Context, id string) (*domain.Shipment, error) {
	shipment, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return shipment, nil
	}
	if !errors.Is(err, domain.ErrShipmentNotFound) {
		return nil, err
	}
	return s.repo.FindByTrackingID(ctx, id)
}

// fetchGeometry asks the routing provider for decorative path geometry.
// Failures are logged and swallowed: geometry never blocks a create.
func (s *ShipmentService) fetchGeometry(ctx context.Context, route []domain.Location) *domain.LineString {
	if s.geometry == nil {
		return nil
	}

	routed := make([]domain.Location, 0, len(route))
	for _, wp := range route {
		if wp.HasCoordinates() {
			routed = append(routed, wp)
		}
	}
	if len(routed) < 2 {
		return nil
	}

	gctx, cancel := context.WithTimeout(ctx, s.geometryTimeout)
	defer cancel()

	geom, err := s.geometry.GetRouteGeometry(gctx, routed)
	if err != nil {
		metrics.GeometryRequestsTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Msg("route geometry unavailable, proceeding without it")
		return nil
	}
	if geom == nil {
		metrics.GeometryRequestsTotal.WithLabelValues("empty").Inc()
		return nil
	}
	metrics.GeometryRequestsTotal.WithLabelValues("ok").Inc()
	return geom
}

func validateCreate(in ports.CreateShipmentInput) error {
	if strings.TrimSpace(in.ContainerID) == "" {
		return fmt.Errorf("%w: container_id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Origin.Name) == "" {
		return fmt.Errorf("%w: origin name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Destination.Name) == "" {
		return fmt.Errorf("%w: destination name is required", domain.ErrValidation)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, in.Status)
	}
	return nil
}

func toLocation(in ports.LocationInput) domain.Location {
	return domain.Location{
		Name:      strings.TrimSpace(in.Name),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
}
