// Package lanes is the gateway to the flight lane registry. A lane's
// waypoints describe the corridor a drone flies between two lockers.
package lanes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dronetrack/internal/apperr"
	"dronetrack/internal/domain"
	"dronetrack/internal/gateway/httpx"
)

// laneDTO carries waypoints as [lon, lat] pairs, GeoJSON coordinate order.
type laneDTO struct {
	ID        string       `json:"id"`
	Waypoints [][2]float64 `json:"waypoints"`
}

// Client is a flight lane gateway backed by the registry's HTTP API.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient creates a flight lane gateway for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// Waypoints fetches a lane's polyline by lane id.
func (c *Client) Waypoints(ctx context.Context, laneID string) ([]domain.Position, error) {
	var dto laneDTO
	u := fmt.Sprintf("%s/lanes/%s", c.baseURL, url.PathEscape(laneID))
	if err := httpx.GetJSON(ctx, c.hc, u, &dto); err != nil {
		if httpx.HasStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: lane %s", apperr.ErrNotFound, laneID)
		}
		return nil, fmt.Errorf("lanes gateway: Waypoints: %w", err)
	}

	points := make([]domain.Position, 0, len(dto.Waypoints))
	for _, p := range dto.Waypoints {
		points = append(points, domain.Position{Lat: p[1], Lon: p[0]})
	}
	return points, nil
}
