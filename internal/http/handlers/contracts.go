package handlers

import (
	"context"

	"dronetrack/internal/domain"
	"dronetrack/internal/service/dispatch"
	"dronetrack/internal/service/route"
	"dronetrack/internal/service/tracking"
)

type orderSource interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

type routeBuilder interface {
	Build(ctx context.Context, o *domain.Order) *domain.RouteModel
}

type commandDispatcher interface {
	Dispatch(ctx context.Context, o *domain.Order, segmentIndex int, kind domain.CommandKind, actingLockerID string) error
}

// NewCommandDispatcher wires a dispatch.Service into a commandDispatcher.
func NewCommandDispatcher(svc *dispatch.Service) commandDispatcher {
	return svc
}

type trackingManager interface {
	Start(ctx context.Context, orderID, observerLockerID string) *tracking.Session
	Stop(s *tracking.Session)
}

// NewTrackingManager wires a tracking.Manager into a trackingManager.
func NewTrackingManager(m *tracking.Manager) trackingManager {
	return m
}

// NewRouteBuilder wires a route.Assembler into a routeBuilder.
func NewRouteBuilder(a *route.Assembler) routeBuilder {
	return a
}
