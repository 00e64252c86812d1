package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dronetrack/internal/domain"
)

func chainOrder(statuses ...domain.SegmentStatus) *domain.Order {
	lockers := []string{"A", "B", "C", "D", "E"}
	o := &domain.Order{
		ID:             "ord-1",
		Status:         domain.OrderStatusInDelivery,
		SourceLockerID: lockers[0],
		DestLockerID:   lockers[len(statuses)],
	}
	for i, st := range statuses {
		o.Segments = append(o.Segments, domain.Segment{
			OrderID:        o.ID,
			Index:          i,
			SourceLockerID: lockers[i],
			DestLockerID:   lockers[i+1],
			Status:         st,
		})
	}
	return o
}

func TestValidateChain_OK(t *testing.T) {
	t.Parallel()

	o := chainOrder(domain.SegmentCompleted, domain.SegmentInProgress, domain.SegmentNone)
	require.NoError(t, o.ValidateChain())
}

func TestValidateChain_Errors(t *testing.T) {
	t.Parallel()

	empty := &domain.Order{ID: "ord-1"}
	require.Error(t, empty.ValidateChain())

	badSource := chainOrder(domain.SegmentNone)
	badSource.Segments[0].SourceLockerID = "X"
	require.Error(t, badSource.ValidateChain())

	badDest := chainOrder(domain.SegmentNone, domain.SegmentNone)
	badDest.Segments[1].DestLockerID = "X"
	require.Error(t, badDest.ValidateChain())

	broken := chainOrder(domain.SegmentNone, domain.SegmentNone)
	broken.Segments[1].SourceLockerID = "X"
	require.Error(t, broken.ValidateChain())
}

func TestCurrentSegmentIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		statuses []domain.SegmentStatus
		want     int
	}{
		{"nothing started", []domain.SegmentStatus{domain.SegmentNone, domain.SegmentNone}, 0},
		{"first in progress", []domain.SegmentStatus{domain.SegmentInProgress, domain.SegmentNone}, 0},
		{"first completed", []domain.SegmentStatus{domain.SegmentCompleted, domain.SegmentNone}, 1},
		{"all completed", []domain.SegmentStatus{domain.SegmentCompleted, domain.SegmentCompleted}, 2},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, chainOrder(tt.statuses...).CurrentSegmentIndex())
		})
	}
}

func TestAssignedDroneID(t *testing.T) {
	t.Parallel()

	o := chainOrder(domain.SegmentCompleted, domain.SegmentInProgress)
	o.Segments[1].DroneID = "DRN-7"
	require.Equal(t, "DRN-7", o.AssignedDroneID())

	done := chainOrder(domain.SegmentCompleted)
	require.Equal(t, "", done.AssignedDroneID())
}

func TestRoleFor(t *testing.T) {
	t.Parallel()

	o := chainOrder(domain.SegmentNone, domain.SegmentNone)

	require.Equal(t, domain.RoleSource, domain.RoleFor(o, "A"))
	require.Equal(t, domain.RoleIntermediate, domain.RoleFor(o, "B"))
	require.Equal(t, domain.RoleDestination, domain.RoleFor(o, "C"))
	require.Equal(t, domain.RoleUnrelated, domain.RoleFor(o, "Z"))
	require.Equal(t, domain.RoleUnrelated, domain.RoleFor(o, ""))
}

func TestSegmentStatus_CanAdvanceTo(t *testing.T) {
	t.Parallel()

	require.True(t, domain.SegmentNone.CanAdvanceTo(domain.SegmentInProgress))
	require.True(t, domain.SegmentInProgress.CanAdvanceTo(domain.SegmentCompleted))

	require.False(t, domain.SegmentNone.CanAdvanceTo(domain.SegmentCompleted))
	require.False(t, domain.SegmentCompleted.CanAdvanceTo(domain.SegmentInProgress))
	require.False(t, domain.SegmentCompleted.CanAdvanceTo(domain.SegmentNone))
	require.False(t, domain.SegmentInProgress.CanAdvanceTo(domain.SegmentNone))
}

func TestSizeClass_Rank(t *testing.T) {
	t.Parallel()

	require.Less(t, domain.SizeSmall.Rank(), domain.SizeMedium.Rank())
	require.Less(t, domain.SizeMedium.Rank(), domain.SizeLarge.Rank())
	require.Less(t, domain.SizeLarge.Rank(), domain.SizeXLarge.Rank())
	require.Equal(t, 4, domain.SizeClass("XXL").Rank())
	require.False(t, domain.SizeClass("XXL").Valid())
}

func TestRouteModel_WithDrone(t *testing.T) {
	t.Parallel()

	m := &domain.RouteModel{OrderID: "ord-1", Path: []domain.Position{{Lat: 1, Lon: 2}}}
	p := &domain.DronePosition{Lat: 3, Lon: 4}

	cp := m.WithDrone(p)
	require.Nil(t, m.Drone)
	require.Same(t, p, cp.Drone)
	require.Equal(t, m.Path, cp.Path)
}
