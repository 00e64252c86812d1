// Package display derives the observer-relative display state of an order.
//
// The projection is a pure function of global order/segment state and the
// observing locker: each participant only ever sees the halves of the
// pipeline adjacent to it, never the whole chain.
package display

import "dronetrack/internal/domain"

// State is the five-valued, observer-relative summary of what a locker
// participant should see or do for an order right now.
type State string

// List of display states. The alphabet is deliberately small and total:
// every (order status, segments, observer) combination maps to exactly one
// state.
const (
	StateSend    State = "SEND"
	StateSent    State = "SENT"
	StateWaiting State = "WAITING"
	StateUnload  State = "UNLOAD"
	StateDone    State = "DONE"
)

// Project returns the display state of an order for the given observer
// locker. Pure and total: inconsistent chains degrade to DONE ("nothing
// actionable here") rather than erroring.
func Project(o *domain.Order, observerLockerID string) State {
	switch observerLockerID {
	case o.SourceLockerID:
		return projectSource(o)
	case o.DestLockerID:
		return projectDestination(o)
	default:
		return projectIntermediate(o, observerLockerID)
	}
}

func projectSource(o *domain.Order) State {
	switch o.Status {
	case domain.OrderStatusPending:
		return StateSend
	case domain.OrderStatusInDelivery:
		if len(o.Segments) > 0 && o.Segments[0].Status == domain.SegmentInProgress {
			return StateSent
		}
		return StateDone
	default:
		return StateDone
	}
}

func projectDestination(o *domain.Order) State {
	switch o.Status {
	case domain.OrderStatusPending:
		return StateWaiting
	case domain.OrderStatusInDelivery:
		if len(o.Segments) > 0 && o.Segments[len(o.Segments)-1].Status == domain.SegmentInProgress {
			return StateUnload
		}
		return StateWaiting
	default:
		return StateDone
	}
}

// projectIntermediate maps the statuses of the segment arriving at and the
// segment departing from the observer. Combinations outside the normal
// pipeline order are terminal, not errors.
func projectIntermediate(o *domain.Order, observerLockerID string) State {
	prev := segmentWithDest(o, observerLockerID)
	next := segmentWithSource(o, observerLockerID)
	if prev == nil || next == nil {
		return StateDone
	}

	switch {
	case prev.Status == domain.SegmentNone && next.Status == domain.SegmentNone:
		return StateWaiting
	case prev.Status == domain.SegmentInProgress && next.Status == domain.SegmentNone:
		return StateUnload
	case prev.Status == domain.SegmentCompleted && next.Status == domain.SegmentNone:
		return StateSend
	case prev.Status == domain.SegmentCompleted && next.Status == domain.SegmentInProgress:
		return StateSent
	default:
		return StateDone
	}
}

func segmentWithDest(o *domain.Order, lockerID string) *domain.Segment {
	for i := range o.Segments {
		if o.Segments[i].DestLockerID == lockerID {
			return &o.Segments[i]
		}
	}
	return nil
}

func segmentWithSource(o *domain.Order, lockerID string) *domain.Segment {
	for i := range o.Segments {
		if o.Segments[i].SourceLockerID == lockerID {
			return &o.Segments[i]
		}
	}
	return nil
}
