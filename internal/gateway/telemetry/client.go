// Package telemetry is the gateway to the drone telemetry service.
package telemetry

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

type positionDTO struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Heading   float64   `json:"heading"`
	Speed     float64   `json:"speed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Client is a drone telemetry gateway backed by its HTTP API.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient creates a telemetry gateway for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// DronePosition fetches the latest known position of a drone.
func (c *Client) DronePosition(ctx context.Context, droneID string) (*domain.DronePosition, error) {
	var dto positionDTO
	u := fmt.Sprintf("%s/drones/%s/position", c.baseURL, url.PathEscape(droneID))
	if err := httpx.GetJSON(ctx, c.hc, u, &dto); err != nil {
		if httpx.HasStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: drone %s", apperr.ErrNotFound, droneID)
		}
		return nil, fmt.Errorf("telemetry gateway: DronePosition: %w", err)
	}
	return &domain.DronePosition{
		Lat:       dto.Lat,
		Lon:       dto.Lon,
		Heading:   dto.Heading,
		Speed:     dto.Speed,
		UpdatedAt: dto.UpdatedAt,
	}, nil
}
