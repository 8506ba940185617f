package handler

import "time"

// --- Request types ---

type locationRequest struct {
	Name      string   `json:"name"      validate:"required"`
	Latitude  *float64 `json:"latitude"  validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type createShipmentRequest struct {
	ContainerID string            `json:"container_id" validate:"required"`
	Origin      locationRequest   `json:"origin"       validate:"required"`
	Destination locationRequest   `json:"destination"  validate:"required"`
	Waypoints   []locationRequest `json:"waypoints"    validate:"omitempty,dive"`
	Status      string            `json:"status"       validate:"omitempty,oneof=pending in_transit delayed delivered cancelled"`
	Notes       string            `json:"notes,omitempty"`
}

type updateLocationRequest struct {
	Name      string   `json:"name"      validate:"required"`
	Latitude  *float64 `json:"latitude"  validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// Response-only types owned by the transport layer. These are
// intentionally separate from domain types so the JSON contract is not
// coupled to internal changes.

type locationResponse struct {
	Name      string     `json:"name"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type lineStringResponse struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type shipmentResponse struct {
	ID                    string              `json:"id"`
	TrackingID            string              `json:"tracking_id"`
	ContainerID           string              `json:"container_id"`
	Status                string              `json:"status"`
	Origin                locationResponse    `json:"origin"`
	Destination           locationResponse    `json:"destination"`
	Route                 []locationResponse  `json:"route"`
	CurrentLocation       *locationResponse   `json:"current_location,omitempty"`
	EstimatedETA          *time.Time          `json:"estimated_eta,omitempty"`
	DetailedRouteGeometry *lineStringResponse `json:"detailed_route_geometry,omitempty"`
	ActualDeliveryDate    *time.Time          `json:"actual_delivery_date,omitempty"`
	Notes                 string              `json:"notes,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

type etaResponse struct {
	TrackingID   string     `json:"tracking_id"`
	Status       string     `json:"status"`
	EstimatedETA *time.Time `json:"estimated_eta,omitempty"`
}

type listShipmentsResponse struct {
	Data  []shipmentResponse `json:"data"`
	Total int                `json:"total"`
}
