package tracking

import (
	"context"

	"dronetrack/internal/domain"
)

// OrderSource fetches the authoritative order state, segments included.
type OrderSource interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

// TelemetrySource polls live drone telemetry.
type TelemetrySource interface {
	DronePosition(ctx context.Context, droneID string) (*domain.DronePosition, error)
}

// RouteBuilder assembles the renderable route model for an order.
type RouteBuilder interface {
	Build(ctx context.Context, o *domain.Order) *domain.RouteModel
}
