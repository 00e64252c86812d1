package display_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dronetrack/internal/domain"
	"dronetrack/internal/service/display"
)

// twoHopOrder builds src --seg0--> H --seg1--> dst.
func twoHopOrder(status domain.OrderStatus, seg0, seg1 domain.SegmentStatus) *domain.Order {
	return &domain.Order{
		ID:             "ord-1",
		Status:         status,
		SourceLockerID: "SRC",
		DestLockerID:   "DST",
		Segments: []domain.Segment{
			{OrderID: "ord-1", Index: 0, SourceLockerID: "SRC", DestLockerID: "H", Status: seg0},
			{OrderID: "ord-1", Index: 1, SourceLockerID: "H", DestLockerID: "DST", Status: seg1},
		},
	}
}

func singleHopOrder(status domain.OrderStatus, seg domain.SegmentStatus) *domain.Order {
	return &domain.Order{
		ID:             "ord-1",
		Status:         status,
		SourceLockerID: "SRC",
		DestLockerID:   "DST",
		Segments: []domain.Segment{
			{OrderID: "ord-1", Index: 0, SourceLockerID: "SRC", DestLockerID: "DST", Status: seg},
		},
	}
}

func TestProject_SourceObserver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status domain.OrderStatus
		seg0   domain.SegmentStatus
		want   display.State
	}{
		{"pending", domain.OrderStatusPending, domain.SegmentNone, display.StateSend},
		{"in delivery first leg flying", domain.OrderStatusInDelivery, domain.SegmentInProgress, display.StateSent},
		{"in delivery first leg done", domain.OrderStatusInDelivery, domain.SegmentCompleted, display.StateDone},
		{"delivered", domain.OrderStatusDelivered, domain.SegmentCompleted, display.StateDone},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o := twoHopOrder(tt.status, tt.seg0, domain.SegmentNone)
			require.Equal(t, tt.want, display.Project(o, "SRC"))
		})
	}
}

func TestProject_DestinationObserver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status domain.OrderStatus
		last   domain.SegmentStatus
		want   display.State
	}{
		{"pending", domain.OrderStatusPending, domain.SegmentNone, display.StateWaiting},
		{"in delivery last leg not started", domain.OrderStatusInDelivery, domain.SegmentNone, display.StateWaiting},
		{"in delivery last leg flying", domain.OrderStatusInDelivery, domain.SegmentInProgress, display.StateUnload},
		{"delivered", domain.OrderStatusDelivered, domain.SegmentCompleted, display.StateDone},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o := twoHopOrder(tt.status, domain.SegmentCompleted, tt.last)
			require.Equal(t, tt.want, display.Project(o, "DST"))
		})
	}
}

func TestProject_IntermediateObserver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		prev, next domain.SegmentStatus
		want       display.State
	}{
		{"nothing moving yet", domain.SegmentNone, domain.SegmentNone, display.StateWaiting},
		{"inbound flying", domain.SegmentInProgress, domain.SegmentNone, display.StateUnload},
		{"inbound landed, handoff due", domain.SegmentCompleted, domain.SegmentNone, display.StateSend},
		{"outbound flying", domain.SegmentCompleted, domain.SegmentInProgress, display.StateSent},
		{"both legs done", domain.SegmentCompleted, domain.SegmentCompleted, display.StateDone},
		// Out-of-order combinations are terminal, not errors.
		{"inconsistent none then in progress", domain.SegmentNone, domain.SegmentInProgress, display.StateDone},
		{"inconsistent in progress both", domain.SegmentInProgress, domain.SegmentInProgress, display.StateDone},
		{"inconsistent none then completed", domain.SegmentNone, domain.SegmentCompleted, display.StateDone},
		{"inconsistent in progress then completed", domain.SegmentInProgress, domain.SegmentCompleted, display.StateDone},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o := twoHopOrder(domain.OrderStatusInDelivery, tt.prev, tt.next)
			require.Equal(t, tt.want, display.Project(o, "H"))
		})
	}
}

func TestProject_UnrelatedObserverDegradesToDone(t *testing.T) {
	t.Parallel()

	o := twoHopOrder(domain.OrderStatusInDelivery, domain.SegmentInProgress, domain.SegmentNone)
	require.Equal(t, display.StateDone, display.Project(o, "ELSEWHERE"))
}

// TestProject_Totality walks every combination of order status, segment
// statuses and observer role and requires exactly one of the five states.
func TestProject_Totality(t *testing.T) {
	t.Parallel()

	statuses := []domain.OrderStatus{
		domain.OrderStatusPending, domain.OrderStatusInDelivery, domain.OrderStatusDelivered,
	}
	segStatuses := []domain.SegmentStatus{
		domain.SegmentNone, domain.SegmentInProgress, domain.SegmentCompleted,
	}
	observers := []string{"SRC", "H", "DST", "ELSEWHERE", ""}
	known := map[display.State]bool{
		display.StateSend: true, display.StateSent: true, display.StateWaiting: true,
		display.StateUnload: true, display.StateDone: true,
	}

	for _, os := range statuses {
		for _, s0 := range segStatuses {
			for _, s1 := range segStatuses {
				for _, obs := range observers {
					got := display.Project(twoHopOrder(os, s0, s1), obs)
					require.True(t, known[got],
						"unknown state %q for (%s,%s,%s,%s)", got, os, s0, s1, obs)
				}
			}
		}
	}
}

// TestProject_Monotonic replays a normal single-hop lifecycle and checks the
// visited display states never go backwards for any fixed observer.
func TestProject_Monotonic(t *testing.T) {
	t.Parallel()

	timeline := []*domain.Order{
		singleHopOrder(domain.OrderStatusPending, domain.SegmentNone),
		singleHopOrder(domain.OrderStatusInDelivery, domain.SegmentInProgress),
		singleHopOrder(domain.OrderStatusDelivered, domain.SegmentCompleted),
	}

	wantSource := []display.State{display.StateSend, display.StateSent, display.StateDone}
	wantDest := []display.State{display.StateWaiting, display.StateUnload, display.StateDone}

	for i, o := range timeline {
		require.Equal(t, wantSource[i], display.Project(o, "SRC"), "source step %d", i)
		require.Equal(t, wantDest[i], display.Project(o, "DST"), "destination step %d", i)
	}
}

// Scenario 3 from the ops runbook: two-hop handoff at hub H.
func TestProject_HubHandoff(t *testing.T) {
	t.Parallel()

	o := twoHopOrder(domain.OrderStatusInDelivery, domain.SegmentCompleted, domain.SegmentNone)
	require.Equal(t, display.StateSend, display.Project(o, "H"))
}
