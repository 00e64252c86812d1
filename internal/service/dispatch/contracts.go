package dispatch

import (
	"context"

	"dronetrack/internal/domain"
)

// CommandSender delivers a flight command to the order/segment store.
type CommandSender interface {
	SendCommand(ctx context.Context, cmd domain.Command) error
}

// Refresher schedules an immediate one-shot refresh of an order's tracking
// sessions, so a successful command is reflected without waiting for the
// next poll tick.
type Refresher interface {
	RefreshOrder(orderID string)
}

// Recorder persists a best-effort audit record of a dispatched command.
type Recorder interface {
	Record(ctx context.Context, cmd domain.Command, accepted bool, reason string) error
}
