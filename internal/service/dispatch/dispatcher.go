// Package dispatch validates and sends START/FINISH segment commands.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dronetrack/internal/apperr"
	"dronetrack/internal/domain"
	"dronetrack/internal/logx"
	"dronetrack/internal/service/display"
)

// Service is the command dispatcher. It checks the requested action against
// the observer's current display state before any network call, sends the
// command once, and never mutates local state optimistically: the segment's
// status is only trusted from the next authoritative refresh.
type Service struct {
	sender    CommandSender
	refresher Refresher
	recorder  Recorder
	logger    logx.Logger
	counter   *prometheus.CounterVec

	defaultDroneID   string
	operationTimeout time.Duration
	now              func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService creates a command dispatcher. recorder and counter may be nil.
func NewService(
	sender CommandSender,
	refresher Refresher,
	recorder Recorder,
	logger logx.Logger,
	counter *prometheus.CounterVec,
	defaultDroneID string,
	timeout time.Duration,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		sender:           sender,
		refresher:        refresher,
		recorder:         recorder,
		logger:           logger,
		counter:          counter,
		defaultDroneID:   defaultDroneID,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
		inflight:         make(map[string]struct{}),
	}
}

// Dispatch validates and sends a command for one segment of an order on
// behalf of the acting locker. Returns apperr.ErrInvalid when the action is
// not legal for the current display state, apperr.ErrConflict when a command
// for the same segment is already in flight, and a wrapped send error when
// the remote rejects or the network fails.
func (s *Service) Dispatch(ctx context.Context, o *domain.Order, segmentIndex int, kind domain.CommandKind, actingLockerID string) error {
	seg, cmd, err := s.validate(o, segmentIndex, kind, actingLockerID)
	if err != nil {
		s.count(kind, "rejected")
		return err
	}

	key := fmt.Sprintf("%s#%d", o.ID, seg.Index)
	if !s.acquire(key) {
		s.count(kind, "busy")
		return fmt.Errorf("%w: command for segment %d already in flight", apperr.ErrConflict, seg.Index)
	}
	defer s.release(key)

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	if err := s.sender.SendCommand(ctx, cmd); err != nil {
		s.count(kind, "failed")
		s.record(cmd, false, err.Error())
		return fmt.Errorf("send %s command for order %s segment %d: %w",
			kind, o.ID, seg.Index, err)
	}

	s.count(kind, "accepted")
	s.record(cmd, true, "")
	s.logger.Info("segment command accepted",
		logx.String("event", "command_accepted"),
		logx.String("order_id", o.ID),
		logx.Int("segment", seg.Index),
		logx.String("kind", string(kind)),
		logx.String("locker_id", actingLockerID),
		logx.String("drone_id", cmd.DroneID),
	)

	if s.refresher != nil {
		s.refresher.RefreshOrder(o.ID)
	}
	return nil
}

// validate checks the precondition locally; no network call happens when it
// fails.
func (s *Service) validate(o *domain.Order, segmentIndex int, kind domain.CommandKind, actingLockerID string) (*domain.Segment, domain.Command, error) {
	if !kind.Valid() {
		return nil, domain.Command{}, fmt.Errorf("%w: unknown command kind %q", apperr.ErrInvalid, kind)
	}
	seg, ok := o.SegmentAt(segmentIndex)
	if !ok {
		return nil, domain.Command{}, fmt.Errorf("%w: order %s has no segment %d", apperr.ErrInvalid, o.ID, segmentIndex)
	}

	state := display.Project(o, actingLockerID)
	switch kind {
	case domain.CommandStart:
		if state != display.StateSend {
			return nil, domain.Command{}, fmt.Errorf("%w: START requires display state SEND, observer is in %s", apperr.ErrInvalid, state)
		}
		if seg.SourceLockerID != actingLockerID {
			return nil, domain.Command{}, fmt.Errorf("%w: START must be issued by segment source %q", apperr.ErrInvalid, seg.SourceLockerID)
		}
	case domain.CommandFinish:
		if state != display.StateUnload {
			return nil, domain.Command{}, fmt.Errorf("%w: FINISH requires display state UNLOAD, observer is in %s", apperr.ErrInvalid, state)
		}
		if seg.DestLockerID != actingLockerID {
			return nil, domain.Command{}, fmt.Errorf("%w: FINISH must be issued by segment destination %q", apperr.ErrInvalid, seg.DestLockerID)
		}
	}

	droneID := seg.DroneID
	if droneID == "" {
		// Documented fallback for segments without an assigned drone.
		droneID = s.defaultDroneID
		s.logger.Warn("segment has no drone assigned, using configured fallback",
			logx.String("order_id", o.ID),
			logx.Int("segment", seg.Index),
			logx.String("drone_id", droneID),
		)
	}

	cmd := domain.Command{
		OrderID:      o.ID,
		Kind:         kind,
		SegmentIndex: seg.Index,
		LockerID:     actingLockerID,
		DroneID:      droneID,
		GCSID:        seg.GCSID,
		IssuedAt:     s.now(),
	}
	return seg, cmd, nil
}

func (s *Service) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Service) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}

// record writes the audit entry; failures are logged only, never surfaced.
func (s *Service) record(cmd domain.Command, accepted bool, reason string) {
	if s.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.operationTimeout)
	defer cancel()
	if err := s.recorder.Record(ctx, cmd, accepted, reason); err != nil {
		s.logger.Error("command audit record failed",
			logx.String("order_id", cmd.OrderID),
			logx.Int("segment", cmd.SegmentIndex),
			logx.Any("err", err),
		)
	}
}

func (s *Service) count(kind domain.CommandKind, outcome string) {
	if s.counter != nil {
		s.counter.WithLabelValues(string(kind), outcome).Inc()
	}
}
