package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cargotrack/tracking-api/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for shipment operations. It
// binds and validates payloads and maps results; domain errors bubble
// to the central error handler for status mapping.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /api/shipments.
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shipment, err := h.service.CreateShipment(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toShipmentResponse(shipment))
}

// List handles GET /api/shipments.
func (h *ShipmentHandler) List(c echo.Context) error {
	shipments, err := h.service.ListShipments(c.Request().Context())
	if err != nil {
		return err
	}

	data := make([]shipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		data = append(data, toShipmentResponse(s))
	}
	return c.JSON(http.StatusOK, listShipmentsResponse{Data: data, Total: len(data)})
}

// Get handles GET /api/shipments/:id. The identifier may be either the
// primary key or the tracking id.
func (h *ShipmentHandler) Get(c echo.Context) error {
	shipment, err := h.service.GetShipment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// UpdateLocation handles POST /api/shipments/:id/update-location.
func (h *ShipmentHandler) UpdateLocation(c echo.Context) error {
	var req updateLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shipment, err := h.service.RecordLocationUpdate(c.Request().Context(), ports.LocationUpdateInput{
		ID:        c.Param("id"),
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// GetETA handles GET /api/shipments/:id/eta. The ETA is recomputed for
// the response and not written back.
func (h *ShipmentHandler) GetETA(c echo.Context) error {
	result, err := h.service.GetETA(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, etaResponse{
		TrackingID:   result.TrackingID,
		Status:       string(result.Status),
		EstimatedETA: result.EstimatedETA,
	})
}
