// Package orders is the gateway to the order management service: it reads
// authoritative order state and delivers segment flight commands.
package orders

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

// Client is an orders gateway backed by the service's HTTP API.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient creates an orders gateway for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// GetOrder fetches an order with its segments by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var dto orderDTO
	u := fmt.Sprintf("%s/orders/%s", c.baseURL, url.PathEscape(orderID))
	if err := httpx.GetJSON(ctx, c.hc, u, &dto); err != nil {
		if httpx.HasStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("orders gateway: GetOrder: %w", err)
	}
	return mapOrder(dto), nil
}

// SendCommand delivers a segment command to the order management service.
// The remote owns the segment state machine; a command that is no longer
// legal there comes back as a conflict.
func (c *Client) SendCommand(ctx context.Context, cmd domain.Command) error {
	u := c.baseURL + "/commands"
	if err := httpx.PostJSON(ctx, c.hc, u, mapCommand(cmd), nil); err != nil {
		switch {
		case httpx.HasStatus(err, http.StatusConflict):
			return fmt.Errorf("%w: command %s for order %s segment %d rejected",
				apperr.ErrConflict, cmd.Kind, cmd.OrderID, cmd.SegmentIndex)
		case httpx.HasStatus(err, http.StatusBadRequest):
			return fmt.Errorf("%w: command %s for order %s segment %d not accepted",
				apperr.ErrInvalid, cmd.Kind, cmd.OrderID, cmd.SegmentIndex)
		case httpx.HasStatus(err, http.StatusNotFound):
			return fmt.Errorf("%w: order %s", apperr.ErrNotFound, cmd.OrderID)
		}
		return fmt.Errorf("orders gateway: SendCommand: %w", err)
	}
	return nil
}
