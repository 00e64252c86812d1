package handlers

import "time"

type displayResponse struct {
	OrderID  string     `json:"order_id"`
	LockerID string     `json:"locker_id"`
	Role     string     `json:"role"`
	State    string     `json:"state"`
	Status   string     `json:"status"`
	ETA      *time.Time `json:"eta,omitempty"`
}

type dispatchRequest struct {
	Action   string `json:"action"`
	LockerID string `json:"locker_id"`
}

type dispatchResponse struct {
	Status string `json:"status"`
}

type positionDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type lockerWaypointDTO struct {
	LockerID string      `json:"locker_id"`
	Name     string      `json:"name"`
	Position positionDTO `json:"position"`
}

type segmentRouteDTO struct {
	Index          int           `json:"index"`
	SourceLockerID string        `json:"source_locker_id"`
	DestLockerID   string        `json:"dest_locker_id"`
	DroneID        string        `json:"drone_id,omitempty"`
	Status         string        `json:"status"`
	Progress       string        `json:"progress"`
	Waypoints      []positionDTO `json:"waypoints"`
}

type dronePositionDTO struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Heading   float64   `json:"heading"`
	Speed     float64   `json:"speed"`
	UpdatedAt time.Time `json:"updated_at"`
}

type boundsDTO struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

type viewportDTO struct {
	Bounds *boundsDTO   `json:"bounds,omitempty"`
	Center *positionDTO `json:"center,omitempty"`
	Zoom   float64      `json:"zoom,omitempty"`
}

type routeResponse struct {
	OrderID  string              `json:"order_id"`
	Segments []segmentRouteDTO   `json:"segments"`
	Lockers  []lockerWaypointDTO `json:"lockers"`
	Path     []positionDTO       `json:"path"`
	Drone    *dronePositionDTO   `json:"drone,omitempty"`
	Viewport *viewportDTO        `json:"viewport,omitempty"`
}

type trackEvent struct {
	OrderID  string        `json:"order_id"`
	State    string        `json:"state"`
	Status   string        `json:"status"`
	Route    routeResponse `json:"route"`
	Viewport *viewportDTO  `json:"viewport,omitempty"`
}
