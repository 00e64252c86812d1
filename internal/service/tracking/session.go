package tracking

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"dronetrack/internal/domain"
	"dronetrack/internal/logx"
	"dronetrack/internal/service/display"
	"dronetrack/internal/service/route"
)

// Snapshot is one render-ready update pushed to a tracking consumer.
type Snapshot struct {
	Order   *domain.Order
	Display display.State
	Route   *domain.RouteModel
	// Viewport is set only on the first successful model of a session;
	// consumers must not re-fit the camera on later snapshots.
	Viewport *route.Viewport
}

// Session owns the two polling loops of one tracking screen: the order
// state loop and the drone telemetry loop. Updates are applied in the order
// their fetches complete; a result that was issued before an already-applied
// one is discarded. Stop is idempotent and guarantees no further emissions.
type Session struct {
	orderID  string
	observer string
	key      string

	deps sessionDeps
	cfg  Config

	ctx    context.Context
	cancel context.CancelFunc

	updates   chan Snapshot
	refreshCh chan struct{}
	first     chan error
	firstOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup

	stateGen uint64
	telemGen uint64

	mu           sync.Mutex
	closed       bool
	fitted       bool
	appliedState uint64
	appliedTelem uint64
	order        *domain.Order
	model        *domain.RouteModel
}

type sessionDeps struct {
	orders    OrderSource
	telemetry TelemetrySource
	routes    RouteBuilder
	logger    logx.Logger
	failures  failureCounter
}

type failureCounter interface {
	inc(loop string)
}

func newSession(ctx context.Context, orderID, observer, key string, deps sessionDeps, cfg Config) *Session {
	sctx, cancel := context.WithCancel(ctx)
	return &Session{
		orderID:   orderID,
		observer:  observer,
		key:       key,
		deps:      deps,
		cfg:       cfg,
		ctx:       sctx,
		cancel:    cancel,
		updates:   make(chan Snapshot, 8),
		refreshCh: make(chan struct{}, 1),
		first:     make(chan error, 1),
	}
}

// OrderID returns the tracked order id.
func (s *Session) OrderID() string { return s.orderID }

// Updates returns the snapshot stream. The channel is closed after Stop
// once both loops have exited; no value is ever delivered after Stop.
func (s *Session) Updates() <-chan Snapshot { return s.updates }

// WaitFirst blocks until the first state fetch completes and returns its
// error, if any. Later tick failures are never surfaced here.
func (s *Session) WaitFirst(ctx context.Context) error {
	select {
	case err := <-s.first:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

// Refresh requests an immediate state poll, coalescing with any pending
// request.
func (s *Session) Refresh() {
	select {
	case s.refreshCh <- struct{}{}:
	default:
	}
}

func (s *Session) start() {
	s.wg.Add(2)
	go s.stateLoop()
	go s.telemetryLoop()
}

// stop cancels both loops and closes the updates channel once they exit.
// Safe to call multiple times.
func (s *Session) stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.cancel()
		go func() {
			s.wg.Wait()
			close(s.updates)
		}()
	})
}

// stateLoop paces order refreshes. Fetches run in their own goroutines so a
// slow fetch never delays the next tick; staleness is resolved at apply time.
func (s *Session) stateLoop() {
	defer s.wg.Done()

	s.spawnStateFetch()

	ticker := time.NewTicker(s.cfg.StateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		case <-s.refreshCh:
		}
		s.spawnStateFetch()
	}
}

func (s *Session) spawnStateFetch() {
	gen := atomic.AddUint64(&s.stateGen, 1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.fetchState(gen)
	}()
}

func (s *Session) fetchState(gen uint64) {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.FetchTimeout)
	defer cancel()

	o, err := s.deps.orders.GetOrder(ctx, s.orderID)
	if err != nil {
		s.failTick("state", err)
		s.firstOnce.Do(func() { s.first <- err })
		return
	}

	model := s.deps.routes.Build(ctx, o)
	state := display.Project(o, s.observer)
	s.applyState(gen, o, state, model)
}

func (s *Session) applyState(gen uint64, o *domain.Order, state display.State, model *domain.RouteModel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen <= s.appliedState {
		return
	}
	s.appliedState = gen

	// Order refreshes rebuild the model wholesale; the last-known drone
	// position is carried forward until the telemetry loop replaces it.
	if model.Drone == nil && s.model != nil {
		model.Drone = s.model.Drone
	}
	s.order = o
	s.model = model

	snap := Snapshot{Order: o, Display: state, Route: model}
	if !s.fitted {
		if vp, ok := route.FitViewport(model.Path); ok {
			snap.Viewport = &vp
			s.fitted = true
		}
	}
	s.emitLocked(snap)
	s.firstOnce.Do(func() { s.first <- nil })
}

// telemetryLoop polls drone position while the order has an assigned drone,
// replacing only the DronePosition of the current model.
func (s *Session) telemetryLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.TelemetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}

		droneID := s.currentDroneID()
		if droneID == "" {
			continue
		}

		gen := atomic.AddUint64(&s.telemGen, 1)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.fetchTelemetry(gen, droneID)
		}()
	}
}

func (s *Session) fetchTelemetry(gen uint64, droneID string) {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.FetchTimeout)
	defer cancel()

	pos, err := s.deps.telemetry.DronePosition(ctx, droneID)
	if err != nil {
		s.failTick("telemetry", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen <= s.appliedTelem || s.model == nil {
		return
	}
	s.appliedTelem = gen
	s.model = s.model.WithDrone(pos)
	s.emitLocked(Snapshot{
		Order:   s.order,
		Display: display.Project(s.order, s.observer),
		Route:   s.model,
	})
}

func (s *Session) currentDroneID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order == nil {
		return ""
	}
	return s.order.AssignedDroneID()
}

// failTick logs and counts a failed poll iteration; the loop carries on.
func (s *Session) failTick(loop string, err error) {
	if s.ctx.Err() != nil {
		return
	}
	s.deps.logger.Warn("tracking poll tick failed",
		logx.String("loop", loop),
		logx.String("order_id", s.orderID),
		logx.Any("err", err),
	)
	if s.deps.failures != nil {
		s.deps.failures.inc(loop)
	}
}

// emitLocked pushes a snapshot without blocking, dropping the oldest queued
// snapshot when the consumer lags. Caller holds s.mu.
func (s *Session) emitLocked(snap Snapshot) {
	select {
	case s.updates <- snap:
		return
	default:
	}
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- snap:
	default:
	}
}
