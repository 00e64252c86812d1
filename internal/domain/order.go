package domain

import (
	"fmt"
	"time"
)

type (
	// OrderStatus represents the global status of an order.
	OrderStatus string
	// Priority represents the delivery priority of an order.
	Priority string
	// SizeClass represents the parcel size tier of an order.
	SizeClass string
)

// List of possible order statuses.
const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInDelivery OrderStatus = "IN_DELIVERY"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
)

// List of possible order priorities.
const (
	PriorityStandard Priority = "STANDARD"
	PriorityExpress  Priority = "EXPRESS"
)

// List of parcel size tiers, smallest first.
const (
	SizeSmall  SizeClass = "S"
	SizeMedium SizeClass = "M"
	SizeLarge  SizeClass = "L"
	SizeXLarge SizeClass = "XL"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderStatusPending, OrderStatusInDelivery, OrderStatusDelivered,
}

var allowedPriorities = [...]Priority{PriorityStandard, PriorityExpress}

var sizeRank = map[SizeClass]int{
	SizeSmall: 0, SizeMedium: 1, SizeLarge: 2, SizeXLarge: 3,
}

// Valid checks if the OrderStatus is valid.
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the Priority is valid.
func (p Priority) Valid() bool {
	for _, v := range allowedPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// Valid checks if the SizeClass is one of the four tiers.
func (s SizeClass) Valid() bool {
	_, ok := sizeRank[s]
	return ok
}

// Rank returns the ordinal of the size tier, smallest first. Unknown sizes
// rank last.
func (s SizeClass) Rank() int {
	if r, ok := sizeRank[s]; ok {
		return r
	}
	return len(sizeRank)
}

// Order represents a multi-hop drone delivery order with its ordered
// flight segments.
type Order struct {
	ID             string
	Weight         float64
	Size           SizeClass
	Priority       Priority
	Status         OrderStatus
	SourceLockerID string
	DestLockerID   string
	Segments       []Segment
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ETA            *time.Time
}

// ValidateChain checks the connected-chain invariant: the first segment
// starts at the order source, the last ends at the order destination, and
// each segment starts where the previous one ended.
func (o *Order) ValidateChain() error {
	if len(o.Segments) == 0 {
		return fmt.Errorf("order %s: no segments", o.ID)
	}
	first, last := o.Segments[0], o.Segments[len(o.Segments)-1]
	if first.SourceLockerID != o.SourceLockerID {
		return fmt.Errorf("order %s: first segment source %q != order source %q",
			o.ID, first.SourceLockerID, o.SourceLockerID)
	}
	if last.DestLockerID != o.DestLockerID {
		return fmt.Errorf("order %s: last segment dest %q != order dest %q",
			o.ID, last.DestLockerID, o.DestLockerID)
	}
	for i := 1; i < len(o.Segments); i++ {
		if o.Segments[i-1].DestLockerID != o.Segments[i].SourceLockerID {
			return fmt.Errorf("order %s: segments %d and %d are not connected", o.ID, i-1, i)
		}
	}
	return nil
}

// CurrentSegmentIndex returns the index of the first segment that is not
// COMPLETED, or len(Segments) when all segments are completed.
func (o *Order) CurrentSegmentIndex() int {
	for i, s := range o.Segments {
		if s.Status != SegmentCompleted {
			return i
		}
	}
	return len(o.Segments)
}

// SegmentAt returns the segment at the given index.
func (o *Order) SegmentAt(index int) (*Segment, bool) {
	if index < 0 || index >= len(o.Segments) {
		return nil, false
	}
	return &o.Segments[index], true
}

// AssignedDroneID returns the drone of the current segment, or empty when
// the order has no active segment or the segment has no drone.
func (o *Order) AssignedDroneID() string {
	idx := o.CurrentSegmentIndex()
	if idx >= len(o.Segments) {
		return ""
	}
	return o.Segments[idx].DroneID
}
