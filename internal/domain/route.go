package domain

import "time"

// SegmentProgress classifies a segment for rendering, derived from the
// order's current segment index.
type SegmentProgress string

// List of segment progress classifications.
const (
	ProgressPending    SegmentProgress = "PENDING"
	ProgressInProgress SegmentProgress = "IN_PROGRESS"
	ProgressCompleted  SegmentProgress = "COMPLETED"
)

// LockerWaypoint is a resolved locker on the route, for map markers.
type LockerWaypoint struct {
	LockerID string
	Name     string
	Position Position
}

// SegmentRoute is one segment's renderable polyline plus its progress.
type SegmentRoute struct {
	Segment   Segment
	Waypoints []Position
	Progress  SegmentProgress
}

// DronePosition is the last polled live telemetry of a drone.
type DronePosition struct {
	Lat       float64
	Lon       float64
	Heading   float64
	Speed     float64
	UpdatedAt time.Time
}

// RouteModel is the render-ready multi-segment route of an order. It is
// rebuilt wholesale on every order refresh and never mutated in place;
// telemetry refreshes swap in a copy with only Drone replaced.
type RouteModel struct {
	OrderID  string
	Segments []SegmentRoute
	Lockers  []LockerWaypoint
	// Path is the concatenation of all segment waypoints in segment order,
	// used for camera fitting.
	Path  []Position
	Drone *DronePosition
}

// WithDrone returns a shallow copy of the model with the drone position
// replaced. Slices are shared: they are never mutated after assembly.
func (m *RouteModel) WithDrone(p *DronePosition) *RouteModel {
	cp := *m
	cp.Drone = p
	return &cp
}
