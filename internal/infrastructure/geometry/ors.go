// Package geometry adapts an OpenRouteService-compatible directions
// endpoint into the core's RouteGeometryGateway port. Geometry is
// decorative: every failure mode degrades to "no geometry" and the
// caller proceeds without it.
package geometry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargotrack/tracking-api/internal/core/domain"
)

const (
	defaultBaseURL = "https://api.openrouteservice.org"
	defaultProfile = "driving-car"
)

// Client fetches route geometry over HTTP. Safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
	profile string
	log     zerolog.Logger
}

// NewClient builds a directions client. An empty apiKey leaves the
// client in a disabled state where every lookup returns no geometry.
func NewClient(baseURL, apiKey string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		profile: defaultProfile,
		log:     log,
	}
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Type        string      `json:"type"`
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// GetRouteGeometry resolves a LineString through the ordered
// coordinate-bearing waypoints. Nil with no error means the provider
// could not supply usable geometry: fewer than two routed waypoints,
// a missing api key, or a response that is not a non-empty LineString.
func (c *Client) GetRouteGeometry(ctx context.Context, waypoints []domain.Location) (*domain.LineString, error) {
	coords := make([][]float64, 0, len(waypoints))
	for _, wp := range waypoints {
		if wp.HasCoordinates() {
			// ORS expects [lon, lat] pairs.
			coords = append(coords, []float64{*wp.Longitude, *wp.Latitude})
		}
	}
	if len(coords) < 2 {
		return nil, nil
	}
	if c.apiKey == "" {
		c.log.Debug().Msg("routing provider not configured, skipping geometry")
		return nil, nil
	}

	body, err := json.Marshal(directionsRequest{Coordinates: coords})
	if err != nil {
		return nil, fmt.Errorf("encode directions request: %w", err)
	}
	url := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, c.profile)

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(body))
	})
	if err != nil {
		return nil, fmt.Errorf("directions call: %w", err)
	}
	defer resp.Body.Close()

	var parsed directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if len(parsed.Features) == 0 {
		return nil, nil
	}
	geom := parsed.Features[0].Geometry
	// Anything other than a LineString with coordinates is unusable.
	if geom.Type != "LineString" || len(geom.Coordinates) == 0 {
		return nil, nil
	}

	return &domain.LineString{
		Type:        geom.Type,
		Coordinates: geom.Coordinates,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429, 5xx)
// with exponential backoff while respecting context cancellation.
func (c *Client) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, err
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				retry = true
			}
		}
		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}
		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil, lastErr
}
