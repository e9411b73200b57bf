package geodata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rooftop-solar/internal/geo"
)

// ErrNotFound is returned when no building polygon exists at the queried
// coordinates. Callers may substitute a synthetic footprint.
var ErrNotFound = errors.New("no building found at coordinates")

// OverpassError represents a transport or protocol failure from the geodata
// service. The resolver treats it as recoverable.
type OverpassError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *OverpassError) Error() string {
	return e.Message
}

// OverpassResponse matches the JSON shape of an Overpass interpreter reply.
type OverpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}

// OverpassElement is one way/relation/node from the reply. Geometry is only
// present for ways and relations queried with `out geom`.
type OverpassElement struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Lat      float64           `json:"lat,omitempty"` // nodes only
	Lon      float64           `json:"lon,omitempty"`
	Geometry []geo.Point       `json:"geometry,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// Client queries an Overpass-compatible interpreter.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates an Overpass client. If baseURL is empty, defaults to the
// public interpreter.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://overpass-api.de/api/interpreter"
	}
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// buildingQuery asks for building ways/relations within radiusM meters of a
// point.
func buildingQuery(lat, lon float64, radiusM int) string {
	return fmt.Sprintf(`[out:json][timeout:25];
(
  way["building"](around:%d,%f,%f);
  relation["building"](around:%d,%f,%f);
);
out geom;`, radiusM, lat, lon, radiusM, lat, lon)
}

// obstructionQuery asks for buildings, trees and barriers within radiusM
// meters of a point.
func obstructionQuery(lat, lon float64, radiusM int) string {
	return fmt.Sprintf(`[out:json][timeout:25];
(
  way["building"](around:%d,%f,%f);
  way["natural"="tree"](around:%d,%f,%f);
  node["natural"="tree"](around:%d,%f,%f);
  way["barrier"](around:%d,%f,%f);
);
out geom;`, radiusM, lat, lon, radiusM, lat, lon, radiusM, lat, lon, radiusM, lat, lon)
}

// Query posts an Overpass-QL query and decodes the reply. The response shape
// is validated at this boundary; anything unexpected comes back as an
// *OverpassError rather than leaking into the analysis code.
func (c *Client) Query(ctx context.Context, query string) (*OverpassResponse, error) {
	body := "data=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Printf("[Overpass] Request failed: %v (duration: %v)", err, duration)
		return nil, &OverpassError{
			Code:    "TRANSPORT_ERROR",
			Message: fmt.Sprintf("overpass request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	log.Printf("[Overpass] Response: %d %s (duration: %v)", resp.StatusCode, resp.Status, duration)

	if resp.StatusCode != http.StatusOK {
		return nil, &OverpassError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("overpass returned status %d", resp.StatusCode),
		}
	}

	var result OverpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("[Overpass] Error decoding response: %v", err)
		return nil, &OverpassError{
			StatusCode: resp.StatusCode,
			Code:       "MALFORMED_RESPONSE",
			Message:    fmt.Sprintf("failed to decode overpass response: %v", err),
		}
	}

	log.Printf("[Overpass] Success: received %d elements", len(result.Elements))
	return &result, nil
}
