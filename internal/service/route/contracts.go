package route

import (
	"context"

	"dronetrack/internal/domain"
)

// LockerDirectory resolves locker ids to named positions.
type LockerDirectory interface {
	Resolve(ctx context.Context, lockerID string) (domain.Locker, error)
}

// LaneResolver resolves a flight lane id to its ordered waypoint polyline.
type LaneResolver interface {
	Waypoints(ctx context.Context, laneID string) ([]domain.Position, error)
}
