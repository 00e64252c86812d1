package app

import (
	"context"

	"dronetrack/internal/logx"
	"dronetrack/internal/service/tracking"
	"dronetrack/internal/transport/kafka"
)

// newOrderEventsHandler turns order-changed events into refresh nudges for
// the tracking sessions watching that order. The poller remains the source
// of truth; a lost event only delays the update until the next tick.
func newOrderEventsHandler(m *tracking.Manager, logger logx.Logger) kafka.HandleFunc {
	return func(_ context.Context, ev kafka.Event) error {
		m.RefreshOrder(ev.OrderID)
		logger.Info("order change event",
			logx.String("order_id", ev.OrderID),
			logx.String("status", ev.Status),
		)
		return nil
	}
}
