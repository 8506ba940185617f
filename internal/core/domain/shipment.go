package domain

import (
	"errors"
	"time"
)

// Status represents the lifecycle state of a shipment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in_transit"
	StatusDelayed   Status = "delayed"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelayed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

var ErrValidation = errors.New("validation failed")
var ErrShipmentNotFound = errors.New("shipment not found")
var ErrShipmentDelivered = errors.New("shipment already delivered")
var ErrDuplicateTracking = errors.New("tracking id already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// Location is a named place with optional coordinates and an optional
// report timestamp. Two locations denote the same waypoint when their
// names match exactly (case-sensitive); coordinates never participate
// in identity.
type Location struct {
	Name      string     `json:"name" bson:"name"`
	Latitude  *float64   `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// LineString is GeoJSON-shaped path geometry supplied by the routing
// provider. It is advisory only: status and ETA logic never read it.
type LineString struct {
	Type        string      `json:"type" bson:"type"`
	Coordinates [][]float64 `json:"coordinates" bson:"coordinates"`
}

// Shipment is the core aggregate root. Route and EstimatedETA are
// derived fields, rebuilt on every mutating operation and never
// settable by callers.
type Shipment struct {
	ID                    string      `json:"id" bson:"_id,omitempty"`
	TrackingID            string      `json:"tracking_id" bson:"tracking_id"`
	ContainerID           string      `json:"container_id" bson:"container_id"`
	Origin                Location    `json:"origin" bson:"origin"`
	Destination           Location    `json:"destination" bson:"destination"`
	Route                 []Location  `json:"route" bson:"route"`
	CurrentLocation       *Location   `json:"current_location,omitempty" bson:"current_location,omitempty"`
	EstimatedETA          *time.Time  `json:"estimated_eta,omitempty" bson:"estimated_eta,omitempty"`
	Status                Status      `json:"status" bson:"status"`
	DetailedRouteGeometry *LineString `json:"detailed_route_geometry,omitempty" bson:"detailed_route_geometry,omitempty"`
	ActualDeliveryDate    *time.Time  `json:"actual_delivery_date,omitempty" bson:"actual_delivery_date,omitempty"`
	Notes                 string      `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt             time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at" bson:"updated_at"`
}
