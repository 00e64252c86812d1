package domain

import "time"

// SegmentStatus represents the status of a single flight segment.
type SegmentStatus string

// List of possible segment statuses. Status is monotonic: NONE →
// IN_PROGRESS → COMPLETED, never backwards.
const (
	SegmentNone       SegmentStatus = "NONE"
	SegmentInProgress SegmentStatus = "IN_PROGRESS"
	SegmentCompleted  SegmentStatus = "COMPLETED"
)

var allowedSegmentStatuses = [...]SegmentStatus{
	SegmentNone, SegmentInProgress, SegmentCompleted,
}

// Valid checks if the SegmentStatus is valid.
func (s SegmentStatus) Valid() bool {
	for _, v := range allowedSegmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanAdvanceTo reports whether the transition from s to next is allowed.
// COMPLETED is terminal; IN_PROGRESS only follows NONE.
func (s SegmentStatus) CanAdvanceTo(next SegmentStatus) bool {
	switch s {
	case SegmentNone:
		return next == SegmentInProgress
	case SegmentInProgress:
		return next == SegmentCompleted
	default:
		return false
	}
}

// Segment represents one drone flight leg between two lockers. Index is
// the position within the order's chain and never changes.
type Segment struct {
	OrderID        string
	Index          int
	SourceLockerID string
	DestLockerID   string
	DroneID        string
	GCSID          string
	FlightLaneID   string
	Status         SegmentStatus
	CreatedAt      time.Time
	EstimatedStart *time.Time
	EstimatedEnd   *time.Time
}
