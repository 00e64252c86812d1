package handlers

import (
	"dronetrack/internal/domain"
	"dronetrack/internal/service/route"
)

func positionsToDTO(points []domain.Position) []positionDTO {
	out := make([]positionDTO, 0, len(points))
	for _, p := range points {
		out = append(out, positionDTO{Lat: p.Lat, Lon: p.Lon})
	}
	return out
}

func routeModelToResponse(m *domain.RouteModel) routeResponse {
	resp := routeResponse{
		OrderID:  m.OrderID,
		Segments: make([]segmentRouteDTO, 0, len(m.Segments)),
		Lockers:  make([]lockerWaypointDTO, 0, len(m.Lockers)),
		Path:     positionsToDTO(m.Path),
	}
	for _, s := range m.Segments {
		resp.Segments = append(resp.Segments, segmentRouteDTO{
			Index:          s.Segment.Index,
			SourceLockerID: s.Segment.SourceLockerID,
			DestLockerID:   s.Segment.DestLockerID,
			DroneID:        s.Segment.DroneID,
			Status:         string(s.Segment.Status),
			Progress:       string(s.Progress),
			Waypoints:      positionsToDTO(s.Waypoints),
		})
	}
	for _, l := range m.Lockers {
		resp.Lockers = append(resp.Lockers, lockerWaypointDTO{
			LockerID: l.LockerID,
			Name:     l.Name,
			Position: positionDTO{Lat: l.Position.Lat, Lon: l.Position.Lon},
		})
	}
	if m.Drone != nil {
		resp.Drone = &dronePositionDTO{
			Lat:       m.Drone.Lat,
			Lon:       m.Drone.Lon,
			Heading:   m.Drone.Heading,
			Speed:     m.Drone.Speed,
			UpdatedAt: m.Drone.UpdatedAt,
		}
	}
	return resp
}

func viewportToDTO(v *route.Viewport) *viewportDTO {
	if v == nil {
		return nil
	}
	dto := &viewportDTO{Zoom: v.Zoom}
	if v.Bounds != nil {
		dto.Bounds = &boundsDTO{
			MinLat: v.Bounds.MinLat,
			MinLon: v.Bounds.MinLon,
			MaxLat: v.Bounds.MaxLat,
			MaxLon: v.Bounds.MaxLon,
		}
	}
	if v.Center != nil {
		dto.Center = &positionDTO{Lat: v.Center.Lat, Lon: v.Center.Lon}
	}
	return dto
}
