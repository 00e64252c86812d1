// Package route assembles render-ready multi-segment routes from order
// segments, the locker directory and flight lane polylines.
package route

import (
	"context"

	"dronetrack/internal/domain"
	"dronetrack/internal/logx"
)

// sentinelLockerID marks a locker reference known to be unresolvable.
const sentinelLockerID = "UNKNOWN"

// Assembler builds RouteModels. Resolution failures degrade gracefully:
// a missing lane falls back to a straight line, an unresolved locker drops
// the segment's waypoints but keeps its progress classification.
type Assembler struct {
	lockers LockerDirectory
	lanes   LaneResolver
	logger  logx.Logger
}

// NewAssembler creates a route Assembler.
func NewAssembler(lockers LockerDirectory, lanes LaneResolver, logger logx.Logger) *Assembler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Assembler{lockers: lockers, lanes: lanes, logger: logger}
}

// Build assembles the route model for an order. It never fails: segments
// that cannot be resolved contribute no geometry.
func (a *Assembler) Build(ctx context.Context, o *domain.Order) *domain.RouteModel {
	model := &domain.RouteModel{OrderID: o.ID}
	current := o.CurrentSegmentIndex()
	seen := make(map[string]bool)

	for i := range o.Segments {
		seg := o.Segments[i]
		sr := domain.SegmentRoute{
			Segment:  seg,
			Progress: classify(seg.Index, current),
		}

		src, srcOK := a.resolveLocker(ctx, seg.SourceLockerID)
		dst, dstOK := a.resolveLocker(ctx, seg.DestLockerID)

		if srcOK && dstOK {
			sr.Waypoints = a.segmentWaypoints(ctx, seg, src.Position, dst.Position)
		}

		if srcOK && !seen[src.ID] {
			seen[src.ID] = true
			model.Lockers = append(model.Lockers, lockerWaypoint(src))
		}
		if dstOK && !seen[dst.ID] {
			seen[dst.ID] = true
			model.Lockers = append(model.Lockers, lockerWaypoint(dst))
		}

		model.Path = append(model.Path, sr.Waypoints...)
		model.Segments = append(model.Segments, sr)
	}

	return model
}

// segmentWaypoints resolves the flight lane polyline, falling back to a
// straight two-point line between the segment endpoints.
func (a *Assembler) segmentWaypoints(ctx context.Context, seg domain.Segment, src, dst domain.Position) []domain.Position {
	if seg.FlightLaneID != "" {
		wps, err := a.lanes.Waypoints(ctx, seg.FlightLaneID)
		if err == nil && len(wps) > 0 {
			return wps
		}
		if err != nil {
			a.logger.Warn("flight lane resolution failed, using straight line",
				logx.String("order_id", seg.OrderID),
				logx.Int("segment", seg.Index),
				logx.String("lane_id", seg.FlightLaneID),
				logx.Any("err", err),
			)
		}
	}
	return []domain.Position{src, dst}
}

func (a *Assembler) resolveLocker(ctx context.Context, lockerID string) (domain.Locker, bool) {
	if lockerID == "" || lockerID == sentinelLockerID {
		return domain.Locker{}, false
	}
	l, err := a.lockers.Resolve(ctx, lockerID)
	if err != nil {
		a.logger.Warn("locker resolution failed",
			logx.String("locker_id", lockerID),
			logx.Any("err", err),
		)
		return domain.Locker{}, false
	}
	return l, true
}

func classify(index, current int) domain.SegmentProgress {
	switch {
	case index < current:
		return domain.ProgressCompleted
	case index == current:
		return domain.ProgressInProgress
	default:
		return domain.ProgressPending
	}
}

func lockerWaypoint(l domain.Locker) domain.LockerWaypoint {
	return domain.LockerWaypoint{LockerID: l.ID, Name: l.Name, Position: l.Position}
}
