package kafka

import (
	"strings"
	"time"
)

// Event is an order-changed notification from the order management service.
type Event struct {
	OrderID    string
	Status     string
	OccurredAt time.Time
}

// EventDTO is the wire form of Event.
type EventDTO struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToDomain converts EventDTO to Event.
func ToDomain(dto EventDTO) Event {
	return Event{
		OrderID:    strings.TrimSpace(dto.OrderID),
		Status:     strings.TrimSpace(dto.Status),
		OccurredAt: dto.OccurredAt,
	}
}
