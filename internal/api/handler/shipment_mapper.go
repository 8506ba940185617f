package handler

import (
	"github.com/cargotrack/tracking-api/internal/core/domain"
	"github.com/cargotrack/tracking-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createShipmentRequest) ports.CreateShipmentInput {
	waypoints := make([]ports.LocationInput, 0, len(req.Waypoints))
	for _, wp := range req.Waypoints {
		waypoints = append(waypoints, toLocationInput(wp))
	}
	return ports.CreateShipmentInput{
		ContainerID:   req.ContainerID,
		Origin:        toLocationInput(req.Origin),
		Destination:   toLocationInput(req.Destination),
		Intermediates: waypoints,
		Status:        domain.Status(req.Status),
		Notes:         req.Notes,
	}
}

func toLocationInput(l locationRequest) ports.LocationInput {
	return ports.LocationInput{
		Name:      l.Name,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

// --- Domain → Response ---

func toShipmentResponse(s *domain.Shipment) shipmentResponse {
	route := make([]locationResponse, 0, len(s.Route))
	for _, wp := range s.Route {
		route = append(route, toLocationResponse(wp))
	}

	resp := shipmentResponse{
		ID:                 s.ID,
		TrackingID:         s.TrackingID,
		ContainerID:        s.ContainerID,
		Status:             string(s.Status),
		Origin:             toLocationResponse(s.Origin),
		Destination:        toLocationResponse(s.Destination),
		Route:              route,
		EstimatedETA:       s.EstimatedETA,
		ActualDeliveryDate: s.ActualDeliveryDate,
		Notes:              s.Notes,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
	if s.CurrentLocation != nil {
		current := toLocationResponse(*s.CurrentLocation)
		resp.CurrentLocation = &current
	}
	if s.DetailedRouteGeometry != nil {
		resp.DetailedRouteGeometry = &lineStringResponse{
			Type:        s.DetailedRouteGeometry.Type,
			Coordinates: s.DetailedRouteGeometry.Coordinates,
		}
	}
	return resp
}

func toLocationResponse(l domain.Location) locationResponse {
	return locationResponse{
		Name:      l.Name,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Timestamp: l.Timestamp,
	}
}
