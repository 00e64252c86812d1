package handlers

import (
	"errors"
	"net/http"

	"dronetrack/internal/apperr"
	"dronetrack/internal/logx"
	"dronetrack/internal/service/route"
)

// RouteHandler serves the assembled render-ready route of an order.
type RouteHandler struct {
	orders orderSource
	routes routeBuilder
	logger logx.Logger
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(logger logx.Logger, orders orderSource, routes routeBuilder) *RouteHandler {
	return &RouteHandler{orders: orders, routes: routes, logger: logger}
}

// Get handles GET /orders/{orderID}/route?locker_id=.
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := lockerIDFromQuery(r); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.orders.GetOrder(r.Context(), orderID)
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
		return
	default:
		writeError(h.logger, w, r, http.StatusBadGateway, "orders service unavailable")
		return
	}

	model := h.routes.Build(r.Context(), o)
	resp := routeModelToResponse(model)
	if vp, ok := route.FitViewport(model.Path); ok {
		resp.Viewport = viewportToDTO(&vp)
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}
