// Package tracking runs the polling sessions behind live order tracking:
// one order state loop and one drone telemetry loop per watched screen.
package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dronetrack/internal/logx"
)

// Config holds the polling cadence of a tracking session.
type Config struct {
	StateInterval     time.Duration
	TelemetryInterval time.Duration
	FetchTimeout      time.Duration
}

func (c Config) withDefaults() Config {
	if c.StateInterval <= 0 {
		c.StateInterval = 5 * time.Second
	}
	if c.TelemetryInterval <= 0 {
		c.TelemetryInterval = time.Second
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 3 * time.Second
	}
	return c
}

// Manager owns all active tracking sessions, keyed by (order, observer).
// Starting a session for a key that is already active replaces the old
// session: the previous one is stopped before the new one begins polling.
type Manager struct {
	deps sessionDeps
	cfg  Config

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager. failures may be nil.
func NewManager(
	orders OrderSource,
	telemetry TelemetrySource,
	routes RouteBuilder,
	logger logx.Logger,
	failures *prometheus.CounterVec,
	cfg Config,
) *Manager {
	if logger == nil {
		logger = logx.Nop()
	}
	deps := sessionDeps{
		orders:    orders,
		telemetry: telemetry,
		routes:    routes,
		logger:    logger,
	}
	if failures != nil {
		deps.failures = counterVecAdapter{vec: failures}
	}
	return &Manager{
		deps:     deps,
		cfg:      cfg.withDefaults(),
		sessions: make(map[string]*Session),
	}
}

// Start opens a tracking session for the given order as seen by the given
// locker. Any previous session for the same pair is stopped first.
func (m *Manager) Start(ctx context.Context, orderID, observerLockerID string) *Session {
	key := orderID + "|" + observerLockerID
	s := newSession(ctx, orderID, observerLockerID, key, m.deps, m.cfg)

	m.mu.Lock()
	prev := m.sessions[key]
	m.sessions[key] = s
	m.mu.Unlock()

	if prev != nil {
		prev.stop()
		m.deps.logger.Debug("replaced tracking session",
			logx.String("order_id", orderID),
			logx.String("locker_id", observerLockerID),
		)
	}

	s.start()
	return s
}

// Stop ends a session. Idempotent; after it returns no further snapshot is
// emitted and the updates channel is closed once the loops drain.
func (m *Manager) Stop(s *Session) {
	if s == nil {
		return
	}
	m.mu.Lock()
	if m.sessions[s.key] == s {
		delete(m.sessions, s.key)
	}
	m.mu.Unlock()
	s.stop()
}

// RefreshOrder nudges every active session watching the given order to poll
// immediately. Used after a successful command and by the order-changed
// event consumer.
func (m *Manager) RefreshOrder(orderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.orderID == orderID {
			s.Refresh()
		}
	}
}

// StopAll ends every active session. Used on shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for key, s := range m.sessions {
		sessions = append(sessions, s)
		delete(m.sessions, key)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.stop()
	}
}

type counterVecAdapter struct {
	vec *prometheus.CounterVec
}

func (a counterVecAdapter) inc(loop string) {
	a.vec.WithLabelValues(loop).Inc()
}
