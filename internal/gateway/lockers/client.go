// Package lockers is the gateway to the locker registry. Lockers change
// rarely, so lookups go through a read-through cache.
package lockers

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

type lockerDTO struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
}

// Client is a locker registry gateway backed by its HTTP API.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient creates a locker registry gateway for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// Resolve fetches a locker by id.
func (c *Client) Resolve(ctx context.Context, lockerID string) (domain.Locker, error) {
	var dto lockerDTO
	u := fmt.Sprintf("%s/lockers/%s", c.baseURL, url.PathEscape(lockerID))
	if err := httpx.GetJSON(ctx, c.hc, u, &dto); err != nil {
		if httpx.HasStatus(err, http.StatusNotFound) {
			return domain.Locker{}, fmt.Errorf("%w: locker %s", apperr.ErrNotFound, lockerID)
		}
		return domain.Locker{}, fmt.Errorf("lockers gateway: Resolve: %w", err)
	}
	return domain.Locker{
		ID:       dto.ID,
		Name:     dto.Name,
		Position: domain.Position{Lat: dto.Lat, Lon: dto.Lon},
		Address:  dto.Address,
	}, nil
}
