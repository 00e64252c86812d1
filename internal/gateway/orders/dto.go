package orders

import (
	"time"

	"dronetrack/internal/domain"
)

type orderDTO struct {
	ID             string       `json:"id"`
	Weight         float64      `json:"weight"`
	Size           string       `json:"size"`
	Priority       string       `json:"priority"`
	Status         string       `json:"status"`
	SourceLockerID string       `json:"source_locker_id"`
	DestLockerID   string       `json:"dest_locker_id"`
	Segments       []segmentDTO `json:"segments"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	ETA            *time.Time   `json:"eta,omitempty"`
}

type segmentDTO struct {
	OrderID        string     `json:"order_id"`
	Index          int        `json:"index"`
	SourceLockerID string     `json:"source_locker_id"`
	DestLockerID   string     `json:"dest_locker_id"`
	DroneID        string     `json:"drone_id"`
	GCSID          string     `json:"gcs_id"`
	FlightLaneID   string     `json:"flight_lane_id"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	EstimatedStart *time.Time `json:"estimated_start,omitempty"`
	EstimatedEnd   *time.Time `json:"estimated_end,omitempty"`
}

type commandDTO struct {
	OrderID      string    `json:"order_id"`
	Action       string    `json:"action"`
	SegmentIndex int       `json:"segment_index"`
	LockerID     string    `json:"locker_id"`
	DroneID      string    `json:"drone_id"`
	GCSID        string    `json:"gcs_id,omitempty"`
	IssuedAt     time.Time `json:"issued_at"`
}

func mapOrder(d orderDTO) *domain.Order {
	o := &domain.Order{
		ID:             d.ID,
		Weight:         d.Weight,
		Size:           domain.SizeClass(d.Size),
		Priority:       domain.Priority(d.Priority),
		Status:         domain.OrderStatus(d.Status),
		SourceLockerID: d.SourceLockerID,
		DestLockerID:   d.DestLockerID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		ETA:            d.ETA,
	}
	o.Segments = make([]domain.Segment, 0, len(d.Segments))
	for _, s := range d.Segments {
		o.Segments = append(o.Segments, domain.Segment{
			OrderID:        s.OrderID,
			Index:          s.Index,
			SourceLockerID: s.SourceLockerID,
			DestLockerID:   s.DestLockerID,
			DroneID:        s.DroneID,
			GCSID:          s.GCSID,
			FlightLaneID:   s.FlightLaneID,
			Status:         domain.SegmentStatus(s.Status),
			CreatedAt:      s.CreatedAt,
			EstimatedStart: s.EstimatedStart,
			EstimatedEnd:   s.EstimatedEnd,
		})
	}
	return o
}

func mapCommand(cmd domain.Command) commandDTO {
	return commandDTO{
		OrderID:      cmd.OrderID,
		Action:       string(cmd.Kind),
		SegmentIndex: cmd.SegmentIndex,
		LockerID:     cmd.LockerID,
		DroneID:      cmd.DroneID,
		GCSID:        cmd.GCSID,
		IssuedAt:     cmd.IssuedAt,
	}
}
