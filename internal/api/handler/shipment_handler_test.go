package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cargotrack/tracking-api/internal/api"
	"github.com/cargotrack/tracking-api/internal/api/handler"
	"github.com/cargotrack/tracking-api/internal/core/domain"
	"github.com/cargotrack/tracking-api/internal/core/ports"
)

type stubShipmentService struct {
	shipment *domain.Shipment
	eta      *ports.ETAResult
	err      error

	lastCreate ports.CreateShipmentInput
	lastUpdate ports.LocationUpdateInput
	lastID     string
}

func (s *stubShipmentService) CreateShipment(_ context.Context, in ports.CreateShipmentInput) (*domain.Shipment, error) {
	s.lastCreate = in
	return s.shipment, s.err
}

func (s *stubShipmentService) GetShipment(_ context.Context, id string) (*domain.Shipment, error) {
	s.lastID = id
	return s.shipment, s.err
}

func (s *stubShipmentService) RecordLocationUpdate(_ context.Context, in ports.LocationUpdateInput) (*domain.Shipment, error) {
	s.lastUpdate = in
	return s.shipment, s.err
}

func (s *stubShipmentService) GetETA(_ context.Context, id string) (*ports.ETAResult, error) {
	s.lastID = id
	return s.eta, s.err
}

func (s *stubShipmentService) ListShipments(_ context.Context) ([]*domain.Shipment, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.shipment == nil {
		return nil, nil
	}
	return []*domain.Shipment{s.shipment}, nil
}

func (s *stubShipmentService) SweepOverdue(_ context.Context) (int, error) {
	return 0, s.err
}

func newTestServer(svc ports.ShipmentService) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewShipmentHandler(svc)
	e.POST("/api/shipments", h.Create)
	e.GET("/api/shipments", h.List)
	e.GET("/api/shipments/:id", h.Get)
	e.POST("/api/shipments/:id/update-location", h.UpdateLocation)
	e.GET("/api/shipments/:id/eta", h.GetETA)
	return e
}

func sampleShipment() *domain.Shipment {
	eta := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	return &domain.Shipment{
		ID:          "65f000000000000000000001",
		TrackingID:  "CT-9F3A61B2",
		ContainerID: "CONT-123",
		Status:      domain.StatusPending,
		Origin:      domain.Location{Name: "Shanghai"},
		Destination: domain.Location{Name: "Rotterdam"},
		Route: []domain.Location{
			{Name: "Shanghai"},
			{Name: "Rotterdam"},
		},
		CurrentLocation: &domain.Location{Name: "Shanghai"},
		EstimatedETA:    &eta,
	}
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateShipmentEndpoint(t *testing.T) {
	svc := &stubShipmentService{shipment: sampleShipment()}
	e := newTestServer(svc)

	body := `{
		"container_id": "CONT-123",
		"origin": {"name": "Shanghai", "latitude": 31.2, "longitude": 121.5},
		"destination": {"name": "Rotterdam", "latitude": 51.9, "longitude": 4.5},
		"waypoints": [{"name": "Suez"}]
	}`
	rec := doRequest(e, http.MethodPost, "/api/shipments", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["tracking_id"] != "CT-9F3A61B2" {
		t.Errorf("unexpected tracking_id: %v", resp["tracking_id"])
	}
	if svc.lastCreate.ContainerID != "CONT-123" {
		t.Errorf("container id not forwarded: %q", svc.lastCreate.ContainerID)
	}
	if len(svc.lastCreate.Intermediates) != 1 || svc.lastCreate.Intermediates[0].Name != "Suez" {
		t.Errorf("waypoints not forwarded: %+v", svc.lastCreate.Intermediates)
	}
}

func TestCreateShipmentEndpoint_InitialStatus(t *testing.T) {
	svc := &stubShipmentService{shipment: sampleShipment()}
	e := newTestServer(svc)

	body := `{
		"container_id": "CONT-123",
		"origin": {"name": "Shanghai"},
		"destination": {"name": "Rotterdam"},
		"status": "in_transit"
	}`
	rec := doRequest(e, http.MethodPost, "/api/shipments", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastCreate.Status != domain.StatusInTransit {
		t.Errorf("status not forwarded: %q", svc.lastCreate.Status)
	}
}

func TestCreateShipmentEndpoint_BadPayload(t *testing.T) {
	e := newTestServer(&stubShipmentService{})

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"container_id": `},
		{"missing container id", `{"origin": {"name": "A"}, "destination": {"name": "B"}}`},
		{"latitude out of range", `{"container_id": "C", "origin": {"name": "A", "latitude": 123.0}, "destination": {"name": "B"}}`},
		{"unknown status", `{"container_id": "C", "origin": {"name": "A"}, "destination": {"name": "B"}, "status": "lost_at_sea"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, "/api/shipments", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetShipmentEndpoint_NotFound(t *testing.T) {
	e := newTestServer(&stubShipmentService{err: domain.ErrShipmentNotFound})

	rec := doRequest(e, http.MethodGet, "/api/shipments/CT-MISSING99", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON error envelope: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected error message in envelope")
	}
}

func TestGetShipmentEndpoint(t *testing.T) {
	svc := &stubShipmentService{shipment: sampleShipment()}
	e := newTestServer(svc)

	rec := doRequest(e, http.MethodGet, "/api/shipments/CT-9F3A61B2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastID != "CT-9F3A61B2" {
		t.Errorf("identifier not forwarded: %q", svc.lastID)
	}
}

func TestListShipmentsEndpoint(t *testing.T) {
	e := newTestServer(&stubShipmentService{shipment: sampleShipment()})

	rec := doRequest(e, http.MethodGet, "/api/shipments", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []json.RawMessage `json:"data"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 {
		t.Errorf("unexpected list envelope: total=%d len=%d", resp.Total, len(resp.Data))
	}
}

func TestUpdateLocationEndpoint(t *testing.T) {
	shipment := sampleShipment()
	shipment.Status = domain.StatusInTransit
	shipment.CurrentLocation = &domain.Location{Name: "Suez"}
	svc := &stubShipmentService{shipment: shipment}
	e := newTestServer(svc)

	rec := doRequest(e, http.MethodPost, "/api/shipments/CT-9F3A61B2/update-location", `{"name": "Suez", "latitude": 30.0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastUpdate.ID != "CT-9F3A61B2" || svc.lastUpdate.Name != "Suez" {
		t.Errorf("update input not forwarded: %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Latitude == nil || *svc.lastUpdate.Latitude != 30.0 {
		t.Error("latitude not forwarded")
	}
}

func TestUpdateLocationEndpoint_Delivered(t *testing.T) {
	e := newTestServer(&stubShipmentService{err: domain.ErrShipmentDelivered})

	rec := doRequest(e, http.MethodPost, "/api/shipments/CT-9F3A61B2/update-location", `{"name": "Hamburg"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for delivered shipment, got %d", rec.Code)
	}
}

func TestUpdateLocationEndpoint_MissingName(t *testing.T) {
	e := newTestServer(&stubShipmentService{})

	rec := doRequest(e, http.MethodPost, "/api/shipments/CT-9F3A61B2/update-location", `{"latitude": 30.0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetETAEndpoint(t *testing.T) {
	eta := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	svc := &stubShipmentService{eta: &ports.ETAResult{
		TrackingID:   "CT-9F3A61B2",
		Status:       domain.StatusInTransit,
		EstimatedETA: &eta,
	}}
	e := newTestServer(svc)

	rec := doRequest(e, http.MethodGet, "/api/shipments/CT-9F3A61B2/eta", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		TrackingID   string     `json:"tracking_id"`
		Status       string     `json:"status"`
		EstimatedETA *time.Time `json:"estimated_eta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.TrackingID != "CT-9F3A61B2" || resp.Status != "in_transit" {
		t.Errorf("unexpected eta envelope: %+v", resp)
	}
	if resp.EstimatedETA == nil || !resp.EstimatedETA.Equal(eta) {
		t.Errorf("unexpected eta value: %v", resp.EstimatedETA)
	}
}

func TestGetETAEndpoint_DeliveredOmitsETA(t *testing.T) {
	svc := &stubShipmentService{eta: &ports.ETAResult{
		TrackingID: "CT-9F3A61B2",
		Status:     domain.StatusDelivered,
	}}
	e := newTestServer(svc)

	rec := doRequest(e, http.MethodGet, "/api/shipments/CT-9F3A61B2/eta", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "estimated_eta") {
		t.Errorf("delivered eta response must omit estimated_eta: %s", rec.Body.String())
	}
}

func TestUnexpectedErrorIsOpaque500(t *testing.T) {
	e := newTestServer(&stubShipmentService{err: context.DeadlineExceeded})

	rec := doRequest(e, http.MethodGet, "/api/shipments/CT-9F3A61B2", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Errorf("error detail leaked: %s", rec.Body.String())
	}
}
